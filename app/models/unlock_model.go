package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactUnlock is one row of the unlock ledger. Rows are append-only and
// unique per (user, listing).
type ContactUnlock struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ListingID uuid.UUID `json:"listing_id" db:"listing_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ContactView is what a caller sees of a listing's seller contact. Phone
// is masked until the caller holds an unlock.
type ContactView struct {
	ListingID    uuid.UUID `json:"listing_id"`
	Phone        string    `json:"phone"`
	Unlocked     bool      `json:"unlocked"`
	PromoterName string    `json:"promoter_name,omitempty"`
}

type UnlockResult struct {
	UnlockID  uuid.UUID `json:"unlock_id"`
	CreatedAt time.Time `json:"created_at"`
	// AlreadyUnlocked is set when a previous unlock for the same pair won.
	AlreadyUnlocked bool `json:"already_unlocked"`
}
