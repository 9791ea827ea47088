// Package services holds the core listing lifecycle, contact unlock and
// public search operations. Each service talks to persistence through a
// narrow store interface so the operations stay testable without a
// database and unaware of the concrete backend.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/models"
	apperrors "github.com/propmitra/propmitra-backend/pkg/errors"
	"github.com/propmitra/propmitra-backend/pkg/logger"
	"github.com/propmitra/propmitra-backend/pkg/utils"
	"go.uber.org/zap"
)

// ListingStore is the persistence port for the listing lifecycle.
// Status-transition methods must be implemented as single atomic
// conditional updates; their InvalidState/NotPending errors come from a
// zero affected-row count, never from a separate read.
type ListingStore interface {
	CreateListing(ctx context.Context, l *models.Listing) error
	GetListingByID(ctx context.Context, id uuid.UUID) (models.Listing, error)
	UpdateListingContent(ctx context.Context, l *models.Listing) error
	SubmitListing(ctx context.Context, id uuid.UUID) error
	ApproveListing(ctx context.Context, id uuid.UUID, adminID uuid.UUID) error
	RejectListing(ctx context.Context, id uuid.UUID, adminID uuid.UUID, reason string) error
	MarkListingFromLive(ctx context.Context, id uuid.UUID, status string) error
	ListPendingListings(ctx context.Context) ([]models.Listing, error)
	ListListingsByPromoter(ctx context.Context, promoterID uuid.UUID) ([]models.Listing, error)
}

// Notifier delivers best-effort events to a user. Failures are logged and
// never fail the triggering operation.
type Notifier interface {
	Send(userID uuid.UUID, payload interface{}) error
}

type ListingService struct {
	Store    ListingStore
	Notifier Notifier
}

func NewListingService(store ListingStore, notifier Notifier) *ListingService {
	return &ListingService{Store: store, Notifier: notifier}
}

// PricePerSqft derives the stored price-per-area value. Zero area yields
// zero rather than a division blowup; submission validation rejects it
// anyway.
func PricePerSqft(totalPrice, totalSqft float64) float64 {
	if totalSqft <= 0 {
		return 0
	}
	return totalPrice / totalSqft
}

// validateSubmission checks the guard for entering PENDING_VERIFICATION.
func validateSubmission(l *models.Listing) error {
	problems := []string{}
	if l.TotalPrice <= 0 {
		problems = append(problems, "total price must be positive")
	}
	if l.TotalSqft <= 0 {
		problems = append(problems, "total area must be positive")
	}
	if len(strings.TrimSpace(l.Description)) < 50 {
		problems = append(problems, "description must be at least 50 characters")
	}
	if len(l.Images) < 3 {
		problems = append(problems, "at least 3 images are required")
	}
	if !l.CommissionAccepted {
		problems = append(problems, "commission agreement must be accepted")
	}
	if len(problems) > 0 {
		return apperrors.Validation(strings.Join(problems, "; "))
	}
	return nil
}

// CreateListing creates a listing for the calling promoter. A complete
// payload goes straight into the review queue; an explicit draft save is
// stored as DRAFT without the submission guard.
func (s *ListingService) CreateListing(ctx context.Context, p utils.Principal, req *models.CreateListingRequest) (models.Listing, error) {
	if p.Role != utils.RolePromoter {
		return models.Listing{}, apperrors.Unauthorized("only promoters can create listings")
	}

	now := time.Now()
	l := models.Listing{
		ID:                 uuid.New(),
		PromoterID:         p.UserID,
		Title:              req.Title,
		Description:        req.Description,
		City:               req.City,
		PropertyType:       req.PropertyType,
		Bedrooms:           req.Bedrooms,
		TotalPrice:         req.TotalPrice,
		TotalSqft:          req.TotalSqft,
		PricePerSqft:       PricePerSqft(req.TotalPrice, req.TotalSqft),
		Images:             req.Images,
		CommissionAccepted: req.CommissionAccepted,
		Status:             models.StatusPendingVerification,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if l.Images == nil {
		l.Images = []string{}
	}

	if req.Draft {
		l.Status = models.StatusDraft
	} else if err := validateSubmission(&l); err != nil {
		return models.Listing{}, err
	}

	if err := s.Store.CreateListing(ctx, &l); err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

// UpdateListing applies promoter content edits. Permitted only while the
// listing is DRAFT, PENDING_VERIFICATION or REJECTED; LIVE listings are
// never directly editable.
func (s *ListingService) UpdateListing(ctx context.Context, p utils.Principal, id uuid.UUID, req *models.UpdateListingRequest) (models.Listing, error) {
	l, err := s.Store.GetListingByID(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}
	if l.PromoterID != p.UserID {
		return models.Listing{}, apperrors.Unauthorized("only the owning promoter can edit a listing")
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.PropertyType != nil {
		l.PropertyType = *req.PropertyType
	}
	if req.Bedrooms != nil {
		l.Bedrooms = *req.Bedrooms
	}
	if req.TotalPrice != nil {
		l.TotalPrice = *req.TotalPrice
	}
	if req.TotalSqft != nil {
		l.TotalSqft = *req.TotalSqft
	}
	if req.Images != nil {
		l.Images = *req.Images
	}
	// Recomputed unconditionally so the stored ratio can never drift from
	// its inputs.
	l.PricePerSqft = PricePerSqft(l.TotalPrice, l.TotalSqft)

	// The store stamps l.UpdatedAt from the row it wrote.
	if err := s.Store.UpdateListingContent(ctx, &l); err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

// SubmitListing resubmits a DRAFT or REJECTED listing for review.
func (s *ListingService) SubmitListing(ctx context.Context, p utils.Principal, id uuid.UUID) error {
	l, err := s.Store.GetListingByID(ctx, id)
	if err != nil {
		return err
	}
	if l.PromoterID != p.UserID {
		return apperrors.Unauthorized("only the owning promoter can submit a listing")
	}
	if err := validateSubmission(&l); err != nil {
		return err
	}
	return s.Store.SubmitListing(ctx, id)
}

// ApproveListing transitions PENDING_VERIFICATION -> LIVE. Exactly one of
// two racing reviews succeeds; the loser gets NotPending and nothing is
// retried, since its premise no longer holds.
func (s *ListingService) ApproveListing(ctx context.Context, p utils.Principal, id uuid.UUID) error {
	if p.Role != utils.RoleAdmin {
		return apperrors.Unauthorized("only admins can approve listings")
	}
	l, err := s.Store.GetListingByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.ApproveListing(ctx, id, p.UserID); err != nil {
		return err
	}
	s.notify(l.PromoterID, map[string]interface{}{
		"event":      "listing_approved",
		"listing_id": id,
	})
	return nil
}

// RejectListing transitions PENDING_VERIFICATION -> REJECTED with a
// required reason.
func (s *ListingService) RejectListing(ctx context.Context, p utils.Principal, id uuid.UUID, reason string) error {
	if p.Role != utils.RoleAdmin {
		return apperrors.Unauthorized("only admins can reject listings")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperrors.Validation("rejection reason is required")
	}
	l, err := s.Store.GetListingByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.RejectListing(ctx, id, p.UserID, reason); err != nil {
		return err
	}
	s.notify(l.PromoterID, map[string]interface{}{
		"event":      "listing_rejected",
		"listing_id": id,
		"reason":     reason,
	})
	return nil
}

// MarkListing moves the promoter's LIVE listing to SOLD or INACTIVE.
func (s *ListingService) MarkListing(ctx context.Context, p utils.Principal, id uuid.UUID, status string) error {
	if status != models.StatusSold && status != models.StatusInactive {
		return apperrors.Validation("status must be SOLD or INACTIVE")
	}
	l, err := s.Store.GetListingByID(ctx, id)
	if err != nil {
		return err
	}
	if l.PromoterID != p.UserID {
		return apperrors.Unauthorized("only the owning promoter can update listing status")
	}
	return s.Store.MarkListingFromLive(ctx, id, status)
}

// GetListing resolves a single listing. LIVE listings are public;
// anything else is visible only to the owning promoter or an admin and
// reported as NotFound to everyone else.
func (s *ListingService) GetListing(ctx context.Context, p *utils.Principal, id uuid.UUID) (models.Listing, error) {
	l, err := s.Store.GetListingByID(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}
	if l.Status == models.StatusLive {
		return l, nil
	}
	if p != nil && (p.UserID == l.PromoterID || p.Role == utils.RoleAdmin) {
		return l, nil
	}
	return models.Listing{}, apperrors.NotFound("listing", id.String())
}

// PendingListings returns the admin review queue, oldest submission first.
func (s *ListingService) PendingListings(ctx context.Context, p utils.Principal) ([]models.Listing, error) {
	if p.Role != utils.RoleAdmin {
		return nil, apperrors.Unauthorized("only admins can view the review queue")
	}
	return s.Store.ListPendingListings(ctx)
}

// MyListings returns the calling promoter's listings in every status.
func (s *ListingService) MyListings(ctx context.Context, p utils.Principal) ([]models.Listing, error) {
	if p.Role != utils.RolePromoter {
		return nil, apperrors.Unauthorized("only promoters have listings")
	}
	return s.Store.ListListingsByPromoter(ctx, p.UserID)
}

func (s *ListingService) notify(userID uuid.UUID, payload map[string]interface{}) {
	if s.Notifier == nil {
		return
	}
	go func() {
		if err := s.Notifier.Send(userID, payload); err != nil {
			logger.L().Debug("listing notify skipped", zap.String("user", userID.String()), zap.Error(err))
		}
	}()
}
