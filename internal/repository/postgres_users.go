package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focozero-data/internal/domain"
)

type PostgresUsersRepository struct {
	db *sql.DB
}

func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

func (r *PostgresUsersRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	q := `
		SELECT
			user_id::text,
			name,
			cpf,
			password_hash,
			role
		FROM users
		WHERE user_id = $1
	`
	var u domain.User
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&u.UserID,
		&u.Name,
		&u.CPF,
		&u.PasswordHash,
		&u.Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
