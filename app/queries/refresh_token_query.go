package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/models"
	apperrors "github.com/propmitra/propmitra-backend/pkg/errors"
)

type RefreshTokenQueries struct {
	DB *sql.DB
}

func (q *RefreshTokenQueries) CreateRefreshToken(ctx context.Context, rt *models.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, revoked) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.DB.ExecContext(ctx, query, rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.CreatedAt, rt.Revoked)
	if err != nil {
		return apperrors.Internal("unable to create refresh token", err)
	}
	return nil
}

func (q *RefreshTokenQueries) GetRefreshTokenByToken(ctx context.Context, token string) (models.RefreshToken, error) {
	rt := models.RefreshToken{}
	query := `SELECT id, user_id, token, expires_at, created_at, revoked FROM refresh_tokens WHERE token = $1`
	err := q.DB.QueryRowContext(ctx, query, token).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt, &rt.Revoked)
	if err != nil {
		if err == sql.ErrNoRows {
			return rt, apperrors.NotFound("refresh token", "")
		}
		return rt, apperrors.Internal("unable to get refresh token", err)
	}
	return rt, nil
}

func (q *RefreshTokenQueries) RevokeRefreshTokenByToken(ctx context.Context, token string) error {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`
	res, err := q.DB.ExecContext(ctx, query, token)
	if err != nil {
		return apperrors.Internal("unable to revoke refresh token", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("refresh token", "")
	}
	return nil
}

func (q *RefreshTokenQueries) RevokeRefreshTokensByUser(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1`
	_, err := q.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return apperrors.Internal("unable to revoke refresh tokens for user", err)
	}
	return nil
}
