package services

import (
	"context"

	"gridsense-backend/internal/models"
)

// SharedSessionStore is the slice of the repository the sharing service needs.
type SharedSessionStore interface {
	Create(ctx context.Context, share *models.SharedSession) error
	ListForRecipient(ctx context.Context, cwid int) ([]models.SessionSummary, error)
}

type SharingService struct {
	shares SharedSessionStore
}

func NewSharingService(shares SharedSessionStore) *SharingService {
	return &SharingService{shares: shares}
}

// Share grants another user visibility of a session. The self-share check
// runs before any storage call; existence and uniqueness are left to the
// database constraints.
func (s *SharingService) Share(ctx context.Context, req models.ShareSessionRequest) (*models.SharedSession, error) {
	if req.SessionCWID == req.ShareToCWID {
		return nil, &SelfShareError{}
	}

	share := &models.SharedSession{
		SessionCWID:   req.SessionCWID,
		SessionNumber: req.SessionNumber,
		ShareToCWID:   req.ShareToCWID,
	}

	if err := s.shares.Create(ctx, share); err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, &DuplicateShareError{Message: "Session has already been shared to that user"}
		case isForeignKeyViolation(err):
			return nil, &ConstraintError{Message: "The session or cwid does not exist"}
		default:
			return nil, err
		}
	}
	return share, nil
}

// ListSharedWith returns the sessions shared to the given user.
func (s *SharingService) ListSharedWith(ctx context.Context, cwid int) ([]models.SessionSummary, error) {
	return s.shares.ListForRecipient(ctx, cwid)
}
