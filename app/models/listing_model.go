package models

import (
	"time"

	"github.com/google/uuid"
)

// Listing statuses. A listing is publicly visible only while LIVE.
const (
	StatusDraft               = "DRAFT"
	StatusPendingVerification = "PENDING_VERIFICATION"
	StatusLive                = "LIVE"
	StatusRejected            = "REJECTED"
	StatusInactive            = "INACTIVE"
	StatusSold                = "SOLD"
)

type Listing struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	PromoterID         uuid.UUID  `json:"promoter_id" db:"promoter_id"`
	Title              string     `json:"title" db:"title"`
	Description        string     `json:"description" db:"description"`
	City               string     `json:"city" db:"city"`
	PropertyType       string     `json:"property_type" db:"property_type"`
	Bedrooms           int        `json:"bedrooms" db:"bedrooms"`
	TotalPrice         float64    `json:"total_price" db:"total_price"`
	TotalSqft          float64    `json:"total_sqft" db:"total_sqft"`
	PricePerSqft       float64    `json:"price_per_sqft" db:"price_per_sqft"`
	Images             []string   `json:"images" db:"images"`
	CommissionAccepted bool       `json:"commission_accepted" db:"commission_accepted"`
	Status             string     `json:"status" db:"status"`
	RejectionReason    *string    `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewedBy         *uuid.UUID `json:"reviewed_by,omitempty" db:"reviewed_by"`
	UnlockCount        int        `json:"unlock_count" db:"unlock_count"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateListingRequest struct {
	Title              string   `json:"title" validate:"required,lte=255"`
	Description        string   `json:"description"`
	City               string   `json:"city" validate:"required,lte=100"`
	PropertyType       string   `json:"property_type" validate:"required,lte=50"`
	Bedrooms           int      `json:"bedrooms" validate:"gte=0"`
	TotalPrice         float64  `json:"total_price"`
	TotalSqft          float64  `json:"total_sqft"`
	Images             []string `json:"images"`
	CommissionAccepted bool     `json:"commission_accepted"`
	// Draft saves skip the submission guard and leave the listing in DRAFT.
	Draft bool `json:"draft,omitempty"`
}

type UpdateListingRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	City         *string   `json:"city"`
	PropertyType *string   `json:"property_type"`
	Bedrooms     *int      `json:"bedrooms"`
	TotalPrice   *float64  `json:"total_price"`
	TotalSqft    *float64  `json:"total_sqft"`
	Images       *[]string `json:"images"`
}

type RejectListingRequest struct {
	Reason string `json:"reason" validate:"required"`
}
