package storage

import (
	"context"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, req *dto.CreateUserRecord) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// GigRepository defines the interface for gig data operations.
//
// AssignIfOpen and DeleteIfOpen are status-guarded writes: they take effect
// only while the gig is still open and report whether a row was affected.
// They are the store-side half of the hire concurrency control.
type GigRepository interface {
	Create(ctx context.Context, req *dto.CreateGigRequest) (*models.Gig, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error)
	ListOpen(ctx context.Context, req *dto.ListGigsRequest) ([]models.Gig, int, error)
	ListByOwner(ctx context.Context, req *dto.ListOwnerGigsRequest) ([]models.Gig, int, error)
	UpdateIfOpen(ctx context.Context, req *dto.UpdateGigRequest) (*models.Gig, bool, error)
	DeleteIfOpen(ctx context.Context, id uuid.UUID) (bool, error)
	AssignIfOpen(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Gig, bool, error)
	AdjustBidCount(ctx context.Context, gigID uuid.UUID, delta int) error
}

// BidRepository defines the interface for bid data operations.
//
// MarkHiredIfPending, RejectPendingByGig and DeleteIfPending are the bid-side
// status-guarded writes used by the hire and withdraw flows.
type BidRepository interface {
	Create(ctx context.Context, req *dto.CreateBidRecord) (*models.Bid, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	GetByGigAndFreelancer(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error)
	ListByGig(ctx context.Context, req *dto.ListGigBidsRequest) ([]models.Bid, error)
	ListByFreelancer(ctx context.Context, req *dto.ListMyBidsRequest) ([]models.Bid, int, error)
	MarkHiredIfPending(ctx context.Context, id uuid.UUID) (*models.Bid, bool, error)
	RejectPendingByGig(ctx context.Context, gigID, excludeBidID uuid.UUID) (int64, error)
	DeleteIfPending(ctx context.Context, id uuid.UUID) (bool, error)
}
