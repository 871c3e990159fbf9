package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gridsense-backend/internal/models"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// CreateBundle persists a session together with all of its times and values
// in a single transaction. The session number is assigned inside the
// transaction: the owner's user row is locked FOR UPDATE first, which both
// verifies the owner exists and serializes concurrent creations for the
// same owner so count-then-insert numbering stays gapless. The assigned
// number is written back into session and every row before insert.
//
// Callers must have validated the value counts already; nothing here
// re-checks the grid arithmetic.
func (r *SessionRepo) CreateBundle(ctx context.Context, session *models.Session, times []models.SessionTime, values []models.SessionValue) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin session bundle: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the owner row. No row means the owner does not exist; the caller
	// maps pgx.ErrNoRows on this path to a constraint violation.
	var ownerCWID int
	err = tx.QueryRow(ctx, "SELECT cwid FROM users WHERE cwid = $1 FOR UPDATE", session.CWID).Scan(&ownerCWID)
	if err != nil {
		return err
	}

	var count int
	err = tx.QueryRow(ctx, "SELECT COUNT(*) FROM sessions WHERE cwid = $1", session.CWID).Scan(&count)
	if err != nil {
		return err
	}
	session.SessionNumber = count + 1

	_, err = tx.Exec(ctx,
		"INSERT INTO sessions (cwid, session_number, description, length, width) VALUES ($1, $2, $3, $4, $5)",
		session.CWID, session.SessionNumber, session.Description, session.Length, session.Width,
	)
	if err != nil {
		return err
	}

	for i := range times {
		times[i].SessionNumber = session.SessionNumber
		_, err = tx.Exec(ctx,
			"INSERT INTO session_times (cwid, session_number, time) VALUES ($1, $2, $3)",
			times[i].CWID, times[i].SessionNumber, times[i].Time,
		)
		if err != nil {
			return err
		}
	}

	// Values can run to hundreds of rows per bundle; COPY them in one shot.
	rows := make([][]interface{}, len(values))
	for i := range values {
		values[i].SessionNumber = session.SessionNumber
		rows[i] = []interface{}{values[i].CWID, values[i].SessionNumber, values[i].Time, values[i].SensorNumber, values[i].SensorValue}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"session_values"},
		[]string{"cwid", "session_number", "time", "sensor_number", "sensor_value"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByKey loads a session with its times and values eagerly attached.
// Times come back in time order and each time's values in sensor order.
func (r *SessionRepo) GetByKey(ctx context.Context, cwid, sessionNumber int) (*models.Session, error) {
	session := &models.Session{}
	err := r.pool.QueryRow(ctx,
		"SELECT cwid, session_number, description, length, width FROM sessions WHERE cwid = $1 AND session_number = $2",
		cwid, sessionNumber,
	).Scan(&session.CWID, &session.SessionNumber, &session.Description, &session.Length, &session.Width)
	if err != nil {
		return nil, err
	}

	timeRows, err := r.pool.Query(ctx,
		"SELECT cwid, session_number, time FROM session_times WHERE cwid = $1 AND session_number = $2 ORDER BY time",
		cwid, sessionNumber,
	)
	if err != nil {
		return nil, err
	}
	defer timeRows.Close()

	for timeRows.Next() {
		var st models.SessionTime
		if err := timeRows.Scan(&st.CWID, &st.SessionNumber, &st.Time); err != nil {
			return nil, err
		}
		session.Times = append(session.Times, st)
	}
	if err := timeRows.Err(); err != nil {
		return nil, err
	}

	valueRows, err := r.pool.Query(ctx,
		"SELECT cwid, session_number, time, sensor_number, sensor_value FROM session_values WHERE cwid = $1 AND session_number = $2 ORDER BY time, sensor_number",
		cwid, sessionNumber,
	)
	if err != nil {
		return nil, err
	}
	defer valueRows.Close()

	byTime := make(map[int64]*models.SessionTime, len(session.Times))
	for i := range session.Times {
		byTime[session.Times[i].Time.UnixNano()] = &session.Times[i]
	}
	for valueRows.Next() {
		var sv models.SessionValue
		if err := valueRows.Scan(&sv.CWID, &sv.SessionNumber, &sv.Time, &sv.SensorNumber, &sv.SensorValue); err != nil {
			return nil, err
		}
		if st, ok := byTime[sv.Time.UnixNano()]; ok {
			st.Values = append(st.Values, sv)
		}
	}
	return session, valueRows.Err()
}

// ListByOwner returns the owner's sessions in creation order, which by
// construction is session-number order. Recorded data is not loaded.
func (r *SessionRepo) ListByOwner(ctx context.Context, cwid int) ([]models.SessionSummary, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT cwid, session_number, description FROM sessions WHERE cwid = $1 ORDER BY session_number",
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
