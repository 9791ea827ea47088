package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/models"
	apperrors "github.com/propmitra/propmitra-backend/pkg/errors"
	"github.com/propmitra/propmitra-backend/pkg/logger"
	"github.com/propmitra/propmitra-backend/pkg/utils"
	"go.uber.org/zap"
)

// UnlockStore is the persistence port for the unlock ledger. CreateUnlock
// must be idempotent per (user, listing): a duplicate reports the existing
// row with created=false instead of failing.
type UnlockStore interface {
	CreateUnlock(ctx context.Context, u *models.ContactUnlock) (models.ContactUnlock, bool, error)
	HasUnlock(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
}

// ContactListingStore is the slice of listing persistence the unlock flow
// needs.
type ContactListingStore interface {
	GetListingByID(ctx context.Context, id uuid.UUID) (models.Listing, error)
	IncrementUnlockCount(ctx context.Context, id uuid.UUID) error
}

// ContactUserStore resolves the promoter whose contact is being viewed.
type ContactUserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// ContactService decides, per (user, listing), whether the seller's full
// phone number is visible, and records unlock events. Unlocking is
// unconditionally free; there is no payment branch.
type ContactService struct {
	Listings ContactListingStore
	Unlocks  UnlockStore
	Users    ContactUserStore
	Notifier Notifier
}

func NewContactService(listings ContactListingStore, unlocks UnlockStore, users ContactUserStore, notifier Notifier) *ContactService {
	return &ContactService{Listings: listings, Unlocks: unlocks, Users: users, Notifier: notifier}
}

// GetContactView returns the listing's seller contact, masked unless the
// caller holds an unlock. A nil userID means unauthenticated and always
// masked. "Not yet unlocked" is a normal state, never an error.
func (s *ContactService) GetContactView(ctx context.Context, listingID uuid.UUID, userID *uuid.UUID) (models.ContactView, error) {
	l, err := s.Listings.GetListingByID(ctx, listingID)
	if err != nil {
		return models.ContactView{}, err
	}
	promoter, err := s.Users.GetUserByID(ctx, l.PromoterID)
	if err != nil {
		return models.ContactView{}, err
	}

	view := models.ContactView{
		ListingID: listingID,
		Phone:     utils.MaskPhone(promoter.PhoneNumber),
	}
	if userID == nil {
		return view, nil
	}

	unlocked, err := s.Unlocks.HasUnlock(ctx, *userID, listingID)
	if err != nil {
		return models.ContactView{}, err
	}
	if unlocked {
		view.Phone = promoter.PhoneNumber
		view.Unlocked = true
		view.PromoterName = promoter.Username
	}
	return view, nil
}

// UnlockContact records an unlock for (user, listing). Two concurrent
// calls converge on the unique constraint: one row wins, both callers see
// success. A fresh unlock bumps the listing's counter and notifies the
// promoter, both best-effort.
func (s *ContactService) UnlockContact(ctx context.Context, listingID uuid.UUID, userID uuid.UUID) (models.UnlockResult, error) {
	if userID == uuid.Nil {
		return models.UnlockResult{}, apperrors.Unauthenticated("sign in to unlock seller contact")
	}
	l, err := s.Listings.GetListingByID(ctx, listingID)
	if err != nil {
		return models.UnlockResult{}, err
	}

	unlock, created, err := s.Unlocks.CreateUnlock(ctx, &models.ContactUnlock{
		ID:        uuid.New(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return models.UnlockResult{}, err
	}

	if created {
		if err := s.Listings.IncrementUnlockCount(ctx, listingID); err != nil {
			logger.L().Warn("unlock count bump failed", zap.String("listing", listingID.String()), zap.Error(err))
		}
		if s.Notifier != nil {
			go func() {
				if err := s.Notifier.Send(l.PromoterID, map[string]interface{}{
					"event":      "contact_unlocked",
					"listing_id": listingID,
				}); err != nil {
					logger.L().Debug("unlock notify skipped", zap.String("user", l.PromoterID.String()), zap.Error(err))
				}
			}()
		}
	}

	return models.UnlockResult{
		UnlockID:        unlock.ID,
		CreatedAt:       unlock.CreatedAt,
		AlreadyUnlocked: !created,
	}, nil
}
