package queries

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/propmitra/propmitra-backend/app/models"
	apperrors "github.com/propmitra/propmitra-backend/pkg/errors"
)

type ListingQueries struct {
	DB *sql.DB
}

const listingColumns = `id, promoter_id, title, description, city, property_type, bedrooms,
	total_price, total_sqft, price_per_sqft, images, commission_accepted, status,
	rejection_reason, reviewed_at, reviewed_by, unlock_count, created_at, updated_at`

// prefixedListingColumns qualifies the listing column list with a table
// alias for joined queries.
func prefixedListingColumns(alias string) string {
	cols := strings.Split(listingColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func scanListing(row interface{ Scan(...interface{}) error }) (models.Listing, error) {
	var l models.Listing
	err := row.Scan(
		&l.ID,
		&l.PromoterID,
		&l.Title,
		&l.Description,
		&l.City,
		&l.PropertyType,
		&l.Bedrooms,
		&l.TotalPrice,
		&l.TotalSqft,
		&l.PricePerSqft,
		pq.Array(&l.Images),
		&l.CommissionAccepted,
		&l.Status,
		&l.RejectionReason,
		&l.ReviewedAt,
		&l.ReviewedBy,
		&l.UnlockCount,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

func (q *ListingQueries) CreateListing(ctx context.Context, l *models.Listing) error {
	query := `INSERT INTO listings
		(id, promoter_id, title, description, city, property_type, bedrooms,
		 total_price, total_sqft, price_per_sqft, images, commission_accepted, status,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := q.DB.ExecContext(ctx, query,
		l.ID,
		l.PromoterID,
		l.Title,
		l.Description,
		l.City,
		l.PropertyType,
		l.Bedrooms,
		l.TotalPrice,
		l.TotalSqft,
		l.PricePerSqft,
		pq.Array(l.Images),
		l.CommissionAccepted,
		l.Status,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		return apperrors.Internal("unable to create listing", err)
	}
	return nil
}

func (q *ListingQueries) GetListingByID(ctx context.Context, id uuid.UUID) (models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 AND deleted_at IS NULL`
	l, err := scanListing(q.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return l, apperrors.NotFound("listing", id.String())
		}
		return l, apperrors.Internal("unable to get listing", err)
	}
	return l, nil
}

// UpdateListingContent writes promoter edits. The status condition rides in
// the UPDATE itself so a listing approved between the ownership check and
// this statement cannot be edited.
func (q *ListingQueries) UpdateListingContent(ctx context.Context, l *models.Listing) error {
	query := `UPDATE listings SET
			title = $1,
			description = $2,
			city = $3,
			property_type = $4,
			bedrooms = $5,
			total_price = $6,
			total_sqft = $7,
			price_per_sqft = $8,
			images = $9,
			updated_at = now()
		WHERE id = $10 AND status IN ('DRAFT', 'PENDING_VERIFICATION', 'REJECTED')
		RETURNING updated_at`

	// RETURNING keeps the caller's copy in step with the stored row.
	err := q.DB.QueryRowContext(ctx, query,
		l.Title,
		l.Description,
		l.City,
		l.PropertyType,
		l.Bedrooms,
		l.TotalPrice,
		l.TotalSqft,
		l.PricePerSqft,
		pq.Array(l.Images),
		l.ID,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.InvalidState("listing is not editable in its current status")
		}
		return apperrors.Internal("unable to update listing", err)
	}
	return nil
}

// SubmitListing moves a DRAFT or REJECTED listing into the review queue.
func (q *ListingQueries) SubmitListing(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE listings SET status = 'PENDING_VERIFICATION', rejection_reason = NULL, updated_at = now()
			  WHERE id = $1 AND status IN ('DRAFT', 'REJECTED')`
	res, err := q.DB.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Internal("unable to submit listing", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.InvalidState("only draft or rejected listings can be submitted")
	}
	return nil
}

// ApproveListing is the status compare-and-swap: a single conditional
// UPDATE, never read-then-write. Zero rows affected means some other
// reviewer got there first.
func (q *ListingQueries) ApproveListing(ctx context.Context, id uuid.UUID, adminID uuid.UUID) error {
	query := `UPDATE listings SET
			status = 'LIVE',
			reviewed_at = now(),
			reviewed_by = $1,
			rejection_reason = NULL,
			updated_at = now()
		WHERE id = $2 AND status = 'PENDING_VERIFICATION'`
	res, err := q.DB.ExecContext(ctx, query, adminID, id)
	if err != nil {
		return apperrors.Internal("unable to approve listing", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotPending("listing is not pending verification")
	}
	return nil
}

// RejectListing is the rejecting half of the same compare-and-swap.
func (q *ListingQueries) RejectListing(ctx context.Context, id uuid.UUID, adminID uuid.UUID, reason string) error {
	query := `UPDATE listings SET
			status = 'REJECTED',
			reviewed_at = now(),
			reviewed_by = $1,
			rejection_reason = $2,
			updated_at = now()
		WHERE id = $3 AND status = 'PENDING_VERIFICATION'`
	res, err := q.DB.ExecContext(ctx, query, adminID, reason, id)
	if err != nil {
		return apperrors.Internal("unable to reject listing", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotPending("listing is not pending verification")
	}
	return nil
}

// MarkListingFromLive moves a LIVE listing to SOLD or INACTIVE.
func (q *ListingQueries) MarkListingFromLive(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE listings SET status = $1, updated_at = now()
			  WHERE id = $2 AND status = 'LIVE'`
	res, err := q.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return apperrors.Internal("unable to update listing status", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.InvalidState("listing is not live")
	}
	return nil
}

func (q *ListingQueries) ListPendingListings(ctx context.Context) ([]models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
			  WHERE status = 'PENDING_VERIFICATION' AND deleted_at IS NULL
			  ORDER BY created_at ASC, id ASC`
	return q.queryListings(ctx, query)
}

func (q *ListingQueries) ListListingsByPromoter(ctx context.Context, promoterID uuid.UUID) ([]models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
			  WHERE promoter_id = $1 AND deleted_at IS NULL
			  ORDER BY created_at DESC, id ASC`
	return q.queryListings(ctx, query, promoterID)
}

// IncrementUnlockCount bumps the listing's unlock counter. Best-effort
// side bookkeeping of a fresh unlock.
func (q *ListingQueries) IncrementUnlockCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE listings SET unlock_count = unlock_count + 1 WHERE id = $1`
	if _, err := q.DB.ExecContext(ctx, query, id); err != nil {
		return apperrors.Internal("unable to increment unlock count", err)
	}
	return nil
}

// SearchListings returns LIVE listings matching the filter. The status
// restriction is baked into the generated SQL and cannot be widened by
// any filter field.
func (q *ListingQueries) SearchListings(ctx context.Context, f models.SearchFilter) ([]models.Listing, error) {
	query, args := buildSearchListingsQuery(f)
	return q.queryListings(ctx, query, args...)
}

func (q *ListingQueries) queryListings(ctx context.Context, query string, args ...interface{}) ([]models.Listing, error) {
	rows, err := q.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Internal("unable to query listings", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, apperrors.Internal("error scanning listing row", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("error iterating listing rows", err)
	}
	return listings, nil
}

// buildSearchListingsQuery assembles the public search statement. All
// range bounds are inclusive; an absent bound leaves that side unbounded.
func buildSearchListingsQuery(f models.SearchFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + listingColumns + ` FROM listings WHERE status = 'LIVE' AND deleted_at IS NULL`)

	args := []interface{}{}
	idx := 1

	if f.City != "" {
		sb.WriteString(fmt.Sprintf(" AND city = $%d", idx))
		args = append(args, f.City)
		idx++
	}
	if f.PropertyType != "" {
		sb.WriteString(fmt.Sprintf(" AND property_type = $%d", idx))
		args = append(args, f.PropertyType)
		idx++
	}
	if f.Bedrooms != nil {
		sb.WriteString(fmt.Sprintf(" AND bedrooms = $%d", idx))
		args = append(args, *f.Bedrooms)
		idx++
	}
	if f.MinPrice != nil {
		sb.WriteString(fmt.Sprintf(" AND total_price >= $%d", idx))
		args = append(args, *f.MinPrice)
		idx++
	}
	if f.MaxPrice != nil {
		sb.WriteString(fmt.Sprintf(" AND total_price <= $%d", idx))
		args = append(args, *f.MaxPrice)
		idx++
	}
	if f.MinPricePerSqft != nil {
		sb.WriteString(fmt.Sprintf(" AND price_per_sqft >= $%d", idx))
		args = append(args, *f.MinPricePerSqft)
		idx++
	}
	if f.MaxPricePerSqft != nil {
		sb.WriteString(fmt.Sprintf(" AND price_per_sqft <= $%d", idx))
		args = append(args, *f.MaxPricePerSqft)
		idx++
	}

	sb.WriteString(" ORDER BY ")
	switch f.Sort {
	case models.SortPriceAsc:
		sb.WriteString("total_price ASC, ")
	case models.SortPriceDesc:
		sb.WriteString("total_price DESC, ")
	case models.SortPricePerSqftAsc:
		sb.WriteString("price_per_sqft ASC, ")
	case models.SortPricePerSqftDesc:
		sb.WriteString("price_per_sqft DESC, ")
	}
	sb.WriteString("created_at DESC, id ASC")

	sb.WriteString(fmt.Sprintf(" LIMIT %d", models.SearchLimit))

	return sb.String(), args
}
