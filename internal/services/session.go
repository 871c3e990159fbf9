package services

import (
	"context"

	"gridsense-backend/internal/models"
)

// SessionStore is the slice of the repository the session service needs.
// CreateBundle assigns session.SessionNumber and stamps it onto every row.
type SessionStore interface {
	CreateBundle(ctx context.Context, session *models.Session, times []models.SessionTime, values []models.SessionValue) error
	GetByKey(ctx context.Context, cwid, sessionNumber int) (*models.Session, error)
	ListByOwner(ctx context.Context, cwid int) ([]models.SessionSummary, error)
}

// SessionService converts between the dense matrix view the API speaks
// and the flat rows the repository stores.
type SessionService struct {
	sessions SessionStore
}

func NewSessionService(sessions SessionStore) *SessionService {
	return &SessionService{sessions: sessions}
}

// Create validates and persists a session bundle atomically. Every time
// entry must carry exactly length*width values; one mismatch rejects the
// whole payload before anything touches storage.
func (s *SessionService) Create(ctx context.Context, req models.CreateSessionRequest) (*models.Session, error) {
	session, times, values, err := disassemble(req)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.CreateBundle(ctx, session, times, values); err != nil {
		switch {
		case isNoRows(err):
			// Owner lock found no user row.
			return nil, &ConstraintError{Message: "No user with that cwid"}
		case isForeignKeyViolation(err):
			return nil, &ConstraintError{Message: "No user with that cwid"}
		case isUniqueViolation(err):
			return nil, &DuplicateKeyError{Message: "Duplicate time in session data"}
		default:
			return nil, err
		}
	}
	return session, nil
}

// Get returns the assembled matrix view of one session.
func (s *SessionService) Get(ctx context.Context, cwid, sessionNumber int) (*models.SessionView, error) {
	session, err := s.sessions.GetByKey(ctx, cwid, sessionNumber)
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Message: "There is no session with the given cwid and session number"}
		}
		return nil, err
	}
	return assemble(session), nil
}

// ListForOwner returns the owner's sessions in session-number order.
func (s *SessionService) ListForOwner(ctx context.Context, cwid int) ([]models.SessionSummary, error) {
	return s.sessions.ListByOwner(ctx, cwid)
}

// disassemble flattens a creation payload into one SessionTime row per
// entry and one SessionValue row per sensor reading. The session number is
// left unset; the store assigns it inside the bundle transaction.
func disassemble(req models.CreateSessionRequest) (*models.Session, []models.SessionTime, []models.SessionValue, error) {
	if req.Length <= 0 || req.Width <= 0 {
		return nil, nil, nil, &ValidationError{Message: "Length and width must be positive"}
	}

	sensors := req.Length * req.Width
	session := &models.Session{
		CWID:        req.CWID,
		Description: req.Description,
		Length:      req.Length,
		Width:       req.Width,
	}

	times := make([]models.SessionTime, 0, len(req.Data))
	values := make([]models.SessionValue, 0, len(req.Data)*sensors)
	for _, entry := range req.Data {
		if len(entry.Values) != sensors {
			return nil, nil, nil, &ValidationError{Message: "The number of sensors did not match the length and width"}
		}
		times = append(times, models.SessionTime{CWID: req.CWID, Time: entry.Time})
		for i, v := range entry.Values {
			values = append(values, models.SessionValue{
				CWID:         req.CWID,
				Time:         entry.Time,
				SensorNumber: i,
				SensorValue:  v,
			})
		}
	}
	return session, times, values, nil
}

// assemble densifies a session's flat rows back into time-ordered value
// slices. Each slice starts as length*width zeros and stored readings are
// scattered in by sensor number; indices missing from storage stay zero.
func assemble(session *models.Session) *models.SessionView {
	view := &models.SessionView{
		Data:   make([]models.TimeEntry, 0, len(session.Times)),
		Length: session.Length,
		Width:  session.Width,
	}

	sensors := session.Length * session.Width
	for _, st := range session.Times {
		entry := models.TimeEntry{Time: st.Time, Values: make([]int, sensors)}
		for _, sv := range st.Values {
			if sv.SensorNumber >= 0 && sv.SensorNumber < sensors {
				entry.Values[sv.SensorNumber] = sv.SensorValue
			}
		}
		view.Data = append(view.Data, entry)
	}
	return view
}
