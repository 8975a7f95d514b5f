package dto

import (
	"time"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"

	"github.com/google/uuid"
)

// --- Gig Request DTOs ---

// CreateGigRequest defines the structure for posting a new gig.
type CreateGigRequest struct {
	Title       string     `json:"title" validate:"required,min=5,max=100"`
	Description string     `json:"description" validate:"required,min=20,max=2000"`
	Budget      float64    `json:"budget" validate:"required,gt=0"`
	Category    string     `json:"category" validate:"omitempty,oneof='Web Development' 'Mobile App' 'Design' 'Content Writing' 'Digital Marketing' 'Other'"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	OwnerID     uuid.UUID  `json:"-"` // Set internally by handler from auth context
}

// UpdateGigRequest defines the structure for editing a gig. Only permitted
// while the gig is still open.
type UpdateGigRequest struct {
	ID          uuid.UUID  `json:"-" validate:"required"` // From URL path
	UserID      uuid.UUID  `json:"-"`                     // Set from auth context for ownership check
	Title       string     `json:"title" validate:"required,min=5,max=100"`
	Description string     `json:"description" validate:"required,min=20,max=2000"`
	Budget      float64    `json:"budget" validate:"required,gt=0"`
	Category    string     `json:"category" validate:"omitempty,oneof='Web Development' 'Mobile App' 'Design' 'Content Writing' 'Digital Marketing' 'Other'"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// ListGigsRequest defines parameters for the public open-gig listing.
type ListGigsRequest struct {
	Search   string `form:"search" validate:"omitempty,max=100"`
	Category string `form:"category" validate:"omitempty,oneof='Web Development' 'Mobile App' 'Design' 'Content Writing' 'Digital Marketing' 'Other'"`
	Limit    int    `form:"limit,default=10" validate:"omitempty,gte=0,lte=100"`
	Offset   int    `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ListOwnerGigsRequest defines parameters for listing the caller's own gigs.
type ListOwnerGigsRequest struct {
	OwnerID uuid.UUID         `json:"-" validate:"required"` // Set from auth context
	Status  *models.GigStatus `form:"status" validate:"omitempty,oneof=open assigned completed cancelled"`
	Limit   int               `form:"limit,default=10" validate:"omitempty,gte=0,lte=100"`
	Offset  int               `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// DeleteGigRequest defines the structure for deleting a gig.
type DeleteGigRequest struct {
	ID     uuid.UUID `json:"-" validate:"required"` // From URL path
	UserID uuid.UUID `json:"-"`                     // Set from auth context for ownership check
}

// --- Gig Response DTOs ---

// GigResponse is the public view of a gig.
type GigResponse struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Budget            float64    `json:"budget"`
	Category          string     `json:"category"`
	Status            string     `json:"status"`
	OwnerID           uuid.UUID  `json:"owner_id"`
	HiredFreelancerID *uuid.UUID `json:"hired_freelancer_id,omitempty"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	BidCount          int        `json:"bid_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// GigListResponse wraps a paginated gig listing.
type GigListResponse struct {
	Total int           `json:"total"`
	Gigs  []GigResponse `json:"gigs"`
}
