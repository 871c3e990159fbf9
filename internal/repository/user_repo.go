package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gridsense-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts a user row. The cwid is caller-supplied; a duplicate
// surfaces as a unique violation from the primary key.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO users (cwid, name, password) VALUES ($1, $2, $3)",
		user.CWID, user.Name, user.Password,
	)
	return err
}

func (r *UserRepo) GetByCWID(ctx context.Context, cwid int) (*models.User, error) {
	user := &models.User{}
	query := `SELECT cwid, name, password FROM users WHERE cwid = $1`

	err := r.pool.QueryRow(ctx, query, cwid).Scan(&user.CWID, &user.Name, &user.Password)
	if err != nil {
		return nil, err
	}
	return user, nil
}
