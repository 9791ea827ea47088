package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/models"
	apperrors "github.com/propmitra/propmitra-backend/pkg/errors"
)

type UserQueries struct {
	DB *sql.DB
}

func (q *UserQueries) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	user := models.User{}

	query := `SELECT uid, username, user_role, email, phone_number, password_hash, created_at, updated_at
			  FROM users WHERE uid = $1`

	err := q.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.UserRole,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return user, apperrors.NotFound("user", id.String())
		}
		return user, apperrors.Internal("unable to get user", err)
	}

	return user, nil
}

func (q *UserQueries) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	user := models.User{}

	query := `SELECT uid, username, user_role, email, phone_number, password_hash, created_at, updated_at
			  FROM users WHERE email = $1`

	err := q.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.UserRole,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return user, apperrors.NotFound("user", email)
		}
		return user, apperrors.Internal("unable to get user", err)
	}

	return user, nil
}

func (q *UserQueries) CreateUser(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (uid, username, user_role, email, password_hash, phone_number, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := q.DB.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.UserRole,
		u.Email,
		u.PasswordHash,
		u.PhoneNumber,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("email already registered")
		}
		return apperrors.Internal("unable to create user", err)
	}

	return nil
}
