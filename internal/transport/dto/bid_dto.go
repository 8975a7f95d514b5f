package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Bid Request DTOs ---

// SubmitBidRequest defines the structure for submitting a bid on a gig.
type SubmitBidRequest struct {
	GigID        uuid.UUID `json:"gig_id" validate:"required"`
	Message      string    `json:"message" validate:"required,min=10,max=1000"`
	Price        float64   `json:"price" validate:"required,gt=0"`
	FreelancerID uuid.UUID `json:"-"` // Set from auth context
}

// CreateBidRecord carries the validated bid fields into the repository.
type CreateBidRecord struct {
	GigID        uuid.UUID
	FreelancerID uuid.UUID
	Message      string
	Price        float64
}

// HireBidRequest defines the structure for hiring the freelancer behind a bid.
type HireBidRequest struct {
	BidID  uuid.UUID `json:"-" validate:"required"` // From URL path
	UserID uuid.UUID `json:"-"`                     // Set from auth context (must be gig owner)
}

// WithdrawBidRequest defines the structure for withdrawing a pending bid.
type WithdrawBidRequest struct {
	BidID  uuid.UUID `json:"-" validate:"required"` // From URL path
	UserID uuid.UUID `json:"-"`                     // Set from auth context (must be the bidder)
}

// ReconcileGigRequest identifies a gig whose hire record should be repaired.
type ReconcileGigRequest struct {
	GigID  uuid.UUID `json:"-" validate:"required"` // From URL path
	UserID uuid.UUID `json:"-"`                     // Set from auth context (must be gig owner)
}

// ListGigBidsRequest defines parameters for listing the bids on a gig
// (gig owner only).
type ListGigBidsRequest struct {
	GigID  uuid.UUID `json:"-" validate:"required"` // From URL path
	UserID uuid.UUID `json:"-"`                     // Set from auth context for ownership check
	Limit  int       `form:"limit,default=10" validate:"omitempty,gte=0,lte=100"`
	Offset int       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ListMyBidsRequest defines parameters for listing the caller's own bids.
type ListMyBidsRequest struct {
	FreelancerID uuid.UUID `json:"-" validate:"required"` // Set from auth context
	Limit        int       `form:"limit,default=10" validate:"omitempty,gte=0,lte=100"`
	Offset       int       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// --- Bid Response DTOs ---

// BidResponse is the public view of a bid.
type BidResponse struct {
	ID           uuid.UUID `json:"id"`
	GigID        uuid.UUID `json:"gig_id"`
	FreelancerID uuid.UUID `json:"freelancer_id"`
	Message      string    `json:"message"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BidListResponse wraps a paginated bid listing.
type BidListResponse struct {
	Total int           `json:"total"`
	Bids  []BidResponse `json:"bids"`
}

// HireBidResponse is returned by the hire endpoint: the updated gig and the
// hired bid, exactly as persisted.
type HireBidResponse struct {
	Gig GigResponse `json:"gig"`
	Bid BidResponse `json:"bid"`
}
