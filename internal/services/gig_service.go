package services

import (
	"context"
	"fmt"
	"log"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/storage"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/google/uuid"
)

type gigService struct {
	gigRepo storage.GigRepository
}

// NewGigService creates a new instance of GigService.
func NewGigService(gigRepo storage.GigRepository) GigService {
	return &gigService{gigRepo: gigRepo}
}

// CreateGig posts a new gig. New gigs always start open with zero bids.
func (s *gigService) CreateGig(ctx context.Context, req *dto.CreateGigRequest) (*models.Gig, error) {
	if req.Category == "" {
		req.Category = models.GigCategoryOther
	}

	gig, err := s.gigRepo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating gig")
	}

	log.Printf("Gig created: %s (%q) by owner %s", gig.ID, gig.Title, gig.OwnerID)
	return gig, nil
}

// GetGigByID retrieves a single gig.
func (s *gigService) GetGigByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	gig, err := s.gigRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching gig %s", id))
	}
	return gig, nil
}

// ListOpenGigs returns the public listing of open gigs, optionally filtered
// by search text and category.
func (s *gigService) ListOpenGigs(ctx context.Context, req *dto.ListGigsRequest) ([]models.Gig, int, error) {
	gigs, total, err := s.gigRepo.ListOpen(ctx, req)
	if err != nil {
		return nil, 0, mapRepoError(err, "listing open gigs")
	}
	return gigs, total, nil
}

// ListOwnerGigs returns the caller's own gigs across all statuses.
func (s *gigService) ListOwnerGigs(ctx context.Context, req *dto.ListOwnerGigsRequest) ([]models.Gig, int, error) {
	gigs, total, err := s.gigRepo.ListByOwner(ctx, req)
	if err != nil {
		return nil, 0, mapRepoError(err, fmt.Sprintf("listing gigs for owner %s", req.OwnerID))
	}
	return gigs, total, nil
}

// UpdateGig edits a gig's listing fields. Only the owner may edit, and only
// while the gig is still open; the open check is enforced by the conditional
// write so an edit racing a hire cannot clobber an assigned gig.
func (s *gigService) UpdateGig(ctx context.Context, req *dto.UpdateGigRequest) (*models.Gig, error) {
	gig, err := s.gigRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching gig %s for update", req.ID))
	}

	if gig.OwnerID != req.UserID {
		log.Printf("UpdateGig: Forbidden attempt by user %s on gig %s owned by %s", req.UserID, req.ID, gig.OwnerID)
		return nil, ErrForbidden
	}

	updated, ok, err := s.gigRepo.UpdateIfOpen(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("updating gig %s", req.ID))
	}
	if !ok {
		log.Printf("UpdateGig: Attempt to edit non-open gig %s", req.ID)
		return nil, ErrGigNotOpen
	}

	return updated, nil
}

// DeleteGig removes a gig. Only the owner may delete, and only while open;
// deleting cascades to the gig's bids.
func (s *gigService) DeleteGig(ctx context.Context, req *dto.DeleteGigRequest) error {
	gig, err := s.gigRepo.GetByID(ctx, req.ID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("fetching gig %s for deletion", req.ID))
	}

	if gig.OwnerID != req.UserID {
		log.Printf("DeleteGig: Forbidden attempt by user %s on gig %s owned by %s", req.UserID, req.ID, gig.OwnerID)
		return ErrForbidden
	}

	deleted, err := s.gigRepo.DeleteIfOpen(ctx, req.ID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("deleting gig %s", req.ID))
	}
	if !deleted {
		log.Printf("DeleteGig: Attempt to delete non-open gig %s", req.ID)
		return ErrGigNotOpen
	}

	log.Printf("Gig %s deleted by owner %s", req.ID, req.UserID)
	return nil
}
