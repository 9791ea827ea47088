package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/models"
	apperrors "github.com/propmitra/propmitra-backend/pkg/errors"
)

type UnlockQueries struct {
	DB *sql.DB
}

// CreateUnlock appends a row to the unlock ledger. The unique constraint
// on (user_id, listing_id) makes the call idempotent: when a concurrent
// or earlier unlock won, the existing row is read back and reported with
// created=false instead of an error.
func (q *UnlockQueries) CreateUnlock(ctx context.Context, u *models.ContactUnlock) (models.ContactUnlock, bool, error) {
	query := `INSERT INTO contact_unlocks (id, user_id, listing_id, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT ON CONSTRAINT contact_unlocks_user_listing_key DO NOTHING
			  RETURNING id, user_id, listing_id, created_at`

	var out models.ContactUnlock
	err := q.DB.QueryRowContext(ctx, query, u.ID, u.UserID, u.ListingID, u.CreatedAt).Scan(
		&out.ID, &out.UserID, &out.ListingID, &out.CreatedAt,
	)
	if err == nil {
		return out, true, nil
	}
	if err != sql.ErrNoRows {
		return out, false, apperrors.Internal("unable to create unlock", err)
	}

	// Conflict path: the pair is already unlocked.
	existing, err := q.GetUnlock(ctx, u.UserID, u.ListingID)
	if err != nil {
		return out, false, err
	}
	return existing, false, nil
}

func (q *UnlockQueries) GetUnlock(ctx context.Context, userID, listingID uuid.UUID) (models.ContactUnlock, error) {
	u := models.ContactUnlock{}
	query := `SELECT id, user_id, listing_id, created_at FROM contact_unlocks
			  WHERE user_id = $1 AND listing_id = $2`
	err := q.DB.QueryRowContext(ctx, query, userID, listingID).Scan(&u.ID, &u.UserID, &u.ListingID, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, apperrors.NotFound("unlock", listingID.String())
		}
		return u, apperrors.Internal("unable to get unlock", err)
	}
	return u, nil
}

// HasUnlock reports whether the (user, listing) pair is unlocked. A
// missing row is a normal state, not a failure.
func (q *UnlockQueries) HasUnlock(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM contact_unlocks WHERE user_id = $1 AND listing_id = $2)`
	if err := q.DB.QueryRowContext(ctx, query, userID, listingID).Scan(&exists); err != nil {
		return false, apperrors.Internal("unable to check unlock", err)
	}
	return exists, nil
}
