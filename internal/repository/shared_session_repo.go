package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gridsense-backend/internal/models"
)

type SharedSessionRepo struct {
	pool *pgxpool.Pool
}

func NewSharedSessionRepo(pool *pgxpool.Pool) *SharedSessionRepo {
	return &SharedSessionRepo{pool: pool}
}

// Create inserts a sharing grant. Existence of the session and the
// recipient is enforced by the foreign keys; a repeated grant trips the
// composite primary key. Both surface as pg errors for the caller to
// classify.
func (r *SharedSessionRepo) Create(ctx context.Context, share *models.SharedSession) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO shared_sessions (session_cwid, session_number, share_to_cwid) VALUES ($1, $2, $3)",
		share.SessionCWID, share.SessionNumber, share.ShareToCWID,
	)
	return err
}

// ListForRecipient returns the sessions shared *to* the given user, not
// the ones they own.
func (r *SharedSessionRepo) ListForRecipient(ctx context.Context, cwid int) ([]models.SessionSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.cwid, s.session_number, s.description
		FROM shared_sessions ss
		JOIN sessions s ON s.cwid = ss.session_cwid AND s.session_number = ss.session_number
		WHERE ss.share_to_cwid = $1
		ORDER BY s.cwid, s.session_number`,
		cwid,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.SessionSummary, 0)
	for rows.Next() {
		var s models.SessionSummary
		if err := rows.Scan(&s.CWID, &s.SessionNumber, &s.Description); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
