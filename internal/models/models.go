package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Gig Status Enum ---
type GigStatus string

const (
	GigStatusOpen      GigStatus = "open"
	GigStatusAssigned  GigStatus = "assigned"
	GigStatusCompleted GigStatus = "completed"
	GigStatusCancelled GigStatus = "cancelled"
)

// Scan implements the sql.Scanner interface for GigStatus
func (gs *GigStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan GigStatus: value is not string or []byte")
		}
	}
	v := GigStatus(strVal)
	switch v {
	case GigStatusOpen, GigStatusAssigned, GigStatusCompleted, GigStatusCancelled:
		*gs = v
		return nil
	default:
		return fmt.Errorf("invalid GigStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for GigStatus
func (gs GigStatus) Value() (driver.Value, error) {
	return string(gs), nil
}

// --- Bid Status Enum ---
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusHired    BidStatus = "hired"
	BidStatusRejected BidStatus = "rejected"
)

// Scan implements the sql.Scanner interface for BidStatus
func (bs *BidStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan BidStatus: value is not string or []byte")
		}
	}
	v := BidStatus(strVal)
	switch v {
	case BidStatusPending, BidStatusHired, BidStatusRejected:
		*bs = v
		return nil
	default:
		return fmt.Errorf("invalid BidStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for BidStatus
func (bs BidStatus) Value() (driver.Value, error) {
	return string(bs), nil
}

// GigCategoryOther is the fallback category for gigs posted without one.
const GigCategoryOther = "Other"

// GigCategories lists the categories a gig may be posted under.
var GigCategories = []string{
	"Web Development",
	"Mobile App",
	"Design",
	"Content Writing",
	"Digital Marketing",
	GigCategoryOther,
}

// User represents a registered account. The same account can post gigs and
// bid on other users' gigs.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Gig represents a client-posted project, open for bidding until one
// freelancer is hired. Status only moves open -> assigned through the hire
// operation; assigned is terminal with respect to hiring.
type Gig struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	Title             string     `json:"title" db:"title"`
	Description       string     `json:"description" db:"description"`
	Budget            float64    `json:"budget" db:"budget"`
	Category          string     `json:"category" db:"category"`
	Status            GigStatus  `json:"status" db:"status"`
	OwnerID           uuid.UUID  `json:"owner_id" db:"owner_id"`
	HiredFreelancerID *uuid.UUID `json:"hired_freelancer_id,omitempty" db:"hired_freelancer_id"` // Pointer for NULLable UUID
	Deadline          *time.Time `json:"deadline,omitempty" db:"deadline"`
	BidCount          int        `json:"bid_count" db:"bid_count"` // Maintained on bid submit/withdraw
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// Bid represents a freelancer's proposal against a specific gig. At most one
// bid per (gig, freelancer) pair exists, and at most one bid per gig may ever
// reach status 'hired'.
type Bid struct {
	ID           uuid.UUID `json:"id" db:"id"`
	GigID        uuid.UUID `json:"gig_id" db:"gig_id"`
	FreelancerID uuid.UUID `json:"freelancer_id" db:"freelancer_id"`
	Message      string    `json:"message" db:"message"`
	Price        float64   `json:"price" db:"price"`
	Status       BidStatus `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
