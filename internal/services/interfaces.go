package services

import (
	"context"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/google/uuid"
)

// UserService defines the interface for account-related business logic.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) // Returns user and token
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// GigService defines the interface for gig-related business logic.
type GigService interface {
	CreateGig(ctx context.Context, req *dto.CreateGigRequest) (*models.Gig, error)
	GetGigByID(ctx context.Context, id uuid.UUID) (*models.Gig, error)
	ListOpenGigs(ctx context.Context, req *dto.ListGigsRequest) ([]models.Gig, int, error)
	ListOwnerGigs(ctx context.Context, req *dto.ListOwnerGigsRequest) ([]models.Gig, int, error)
	UpdateGig(ctx context.Context, req *dto.UpdateGigRequest) (*models.Gig, error)
	DeleteGig(ctx context.Context, req *dto.DeleteGigRequest) error
}

// BidService defines the interface for bid-related business logic, including
// the hire operation.
type BidService interface {
	SubmitBid(ctx context.Context, req *dto.SubmitBidRequest) (*models.Bid, error)
	WithdrawBid(ctx context.Context, req *dto.WithdrawBidRequest) error
	HireBid(ctx context.Context, req *dto.HireBidRequest) (*models.Gig, *models.Bid, error)
	ListBidsForGig(ctx context.Context, req *dto.ListGigBidsRequest) ([]models.Bid, error)
	ListMyBids(ctx context.Context, req *dto.ListMyBidsRequest) ([]models.Bid, int, error)
	ReconcileGigHire(ctx context.Context, req *dto.ReconcileGigRequest) (bool, error)
}
