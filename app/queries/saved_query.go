package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/models"
	apperrors "github.com/propmitra/propmitra-backend/pkg/errors"
)

type SavedQueries struct {
	DB *sql.DB
}

// ToggleSaved flips the bookmark for (user, listing) and reports whether
// the listing ended up saved. Delete-first keeps the toggle race-safe:
// two concurrent toggles resolve to one of the two valid end states.
func (q *SavedQueries) ToggleSaved(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	res, err := q.DB.ExecContext(ctx,
		`DELETE FROM saved_properties WHERE user_id = $1 AND listing_id = $2`,
		userID, listingID,
	)
	if err != nil {
		return false, apperrors.Internal("unable to toggle saved property", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows > 0 {
		return false, nil
	}

	_, err = q.DB.ExecContext(ctx,
		`INSERT INTO saved_properties (id, user_id, listing_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT ON CONSTRAINT saved_properties_user_listing_key DO NOTHING`,
		uuid.New(), userID, listingID, time.Now(),
	)
	if err != nil {
		return false, apperrors.Internal("unable to save property", err)
	}
	return true, nil
}

// ListSavedListings returns the user's bookmarked listings, newest
// bookmark first.
func (q *SavedQueries) ListSavedListings(ctx context.Context, userID uuid.UUID) ([]models.Listing, error) {
	query := `SELECT ` + prefixedListingColumns("l") + `
			  FROM saved_properties sp
			  JOIN listings l ON l.id = sp.listing_id
			  WHERE sp.user_id = $1 AND l.deleted_at IS NULL
			  ORDER BY sp.created_at DESC, l.id ASC`

	rows, err := q.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Internal("unable to list saved properties", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, apperrors.Internal("error scanning saved listing row", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("error iterating saved listing rows", err)
	}
	return listings, nil
}
