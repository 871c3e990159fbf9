package services

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"gridsense-backend/internal/models"
)

// fakeStore backs all three store interfaces with maps, reproducing the
// database's observable behavior: pgx.ErrNoRows for missing rows,
// PgError 23505 for primary-key conflicts and 23503 for broken foreign
// keys. Call counters let tests assert fail-fast paths never hit storage.

type sessionKey struct{ cwid, number int }
type shareKey struct{ sessionCWID, number, shareTo int }

type fakeStore struct {
	users    map[int]models.User
	sessions map[sessionKey]*models.Session
	shares   map[shareKey]models.SharedSession

	createBundleCalls int
	createShareCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int]models.User),
		sessions: make(map[sessionKey]*models.Session),
		shares:   make(map[shareKey]models.SharedSession),
	}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}

// UserStore

func (f *fakeStore) Create(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.CWID]; ok {
		return uniqueViolation("users_pkey")
	}
	f.users[user.CWID] = *user
	return nil
}

func (f *fakeStore) GetByCWID(ctx context.Context, cwid int) (*models.User, error) {
	u, ok := f.users[cwid]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

// SessionStore

func (f *fakeStore) CreateBundle(ctx context.Context, session *models.Session, times []models.SessionTime, values []models.SessionValue) error {
	f.createBundleCalls++

	// Owner row lock finds nothing.
	if _, ok := f.users[session.CWID]; !ok {
		return pgx.ErrNoRows
	}

	count := 0
	for k := range f.sessions {
		if k.cwid == session.CWID {
			count++
		}
	}
	session.SessionNumber = count + 1

	stored := &models.Session{
		CWID:          session.CWID,
		SessionNumber: session.SessionNumber,
		Description:   session.Description,
		Length:        session.Length,
		Width:         session.Width,
	}
	seen := make(map[int64]bool)
	for _, st := range times {
		if seen[st.Time.UnixNano()] {
			return uniqueViolation("session_times_pkey")
		}
		seen[st.Time.UnixNano()] = true
		st.SessionNumber = session.SessionNumber
		stored.Times = append(stored.Times, st)
	}
	for _, sv := range values {
		sv.SessionNumber = session.SessionNumber
		for i := range stored.Times {
			if stored.Times[i].Time.Equal(sv.Time) {
				stored.Times[i].Values = append(stored.Times[i].Values, sv)
			}
		}
	}
	sort.Slice(stored.Times, func(i, j int) bool { return stored.Times[i].Time.Before(stored.Times[j].Time) })
	f.sessions[sessionKey{session.CWID, session.SessionNumber}] = stored
	return nil
}

func (f *fakeStore) GetByKey(ctx context.Context, cwid, sessionNumber int) (*models.Session, error) {
	s, ok := f.sessions[sessionKey{cwid, sessionNumber}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, cwid int) ([]models.SessionSummary, error) {
	out := make([]models.SessionSummary, 0)
	for _, s := range f.sessions {
		if s.CWID == cwid {
			out = append(out, models.SessionSummary{CWID: s.CWID, SessionNumber: s.SessionNumber, Description: s.Description})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionNumber < out[j].SessionNumber })
	return out, nil
}

// SharedSessionStore

func (f *fakeStore) CreateShare(ctx context.Context, share *models.SharedSession) error {
	f.createShareCalls++

	if _, ok := f.sessions[sessionKey{share.SessionCWID, share.SessionNumber}]; !ok {
		return fkViolation("shared_sessions_session_fkey")
	}
	if _, ok := f.users[share.ShareToCWID]; !ok {
		return fkViolation("shared_sessions_share_to_cwid_fkey")
	}
	k := shareKey{share.SessionCWID, share.SessionNumber, share.ShareToCWID}
	if _, ok := f.shares[k]; ok {
		return uniqueViolation("shared_sessions_pkey")
	}
	f.shares[k] = *share
	return nil
}

func (f *fakeStore) ListForRecipient(ctx context.Context, cwid int) ([]models.SessionSummary, error) {
	out := make([]models.SessionSummary, 0)
	for k := range f.shares {
		if k.shareTo == cwid {
			if s, ok := f.sessions[sessionKey{k.sessionCWID, k.number}]; ok {
				out = append(out, models.SessionSummary{CWID: s.CWID, SessionNumber: s.SessionNumber, Description: s.Description})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CWID != out[j].CWID {
			return out[i].CWID < out[j].CWID
		}
		return out[i].SessionNumber < out[j].SessionNumber
	})
	return out, nil
}

// shareStore adapts fakeStore to the SharedSessionStore interface, whose
// Create collides with UserStore's.
type shareStore struct{ *fakeStore }

func (s shareStore) Create(ctx context.Context, share *models.SharedSession) error {
	return s.CreateShare(ctx, share)
}
