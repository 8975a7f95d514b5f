package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/notify"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/storage"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"
)

// notifyTimeout bounds the fire-and-forget event publish so a stalled
// notification channel can never hold a request goroutine hostage.
const notifyTimeout = 5 * time.Second

type bidService struct {
	bidRepo  storage.BidRepository
	gigRepo  storage.GigRepository
	notifier notify.Notifier
}

// NewBidService creates a new instance of BidService.
func NewBidService(bidRepo storage.BidRepository, gigRepo storage.GigRepository, notifier notify.Notifier) BidService {
	return &bidService{
		bidRepo:  bidRepo,
		gigRepo:  gigRepo,
		notifier: notifier,
	}
}

// SubmitBid creates a pending bid on an open gig.
func (s *bidService) SubmitBid(ctx context.Context, req *dto.SubmitBidRequest) (*models.Bid, error) {
	// 1. Fetch the gig to check its state
	gig, err := s.gigRepo.GetByID(ctx, req.GigID)
	if err != nil {
		return nil, mapFetchError(err, ErrGigNotFound, fmt.Sprintf("fetching gig %s for bid", req.GigID))
	}

	// 2. Validation
	if gig.Status != models.GigStatusOpen {
		log.Printf("SubmitBid: Attempt to bid on non-open gig %s (Status: %s)", gig.ID, gig.Status)
		return nil, ErrGigNotOpen
	}
	if gig.OwnerID == req.FreelancerID {
		return nil, ErrSelfBid
	}

	if _, err := s.bidRepo.GetByGigAndFreelancer(ctx, req.GigID, req.FreelancerID); err == nil {
		log.Printf("SubmitBid: Freelancer %s already bid on gig %s", req.FreelancerID, req.GigID)
		return nil, ErrDuplicateBid
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, mapRepoError(err, fmt.Sprintf("checking existing bid on gig %s", req.GigID))
	}

	// 3. Create the bid. The unique index on (gig_id, freelancer_id) is the
	// backstop for two simultaneous submissions from the same freelancer.
	bid, err := s.bidRepo.Create(ctx, &dto.CreateBidRecord{
		GigID:        req.GigID,
		FreelancerID: req.FreelancerID,
		Message:      req.Message,
		Price:        req.Price,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrDuplicateBid
		}
		return nil, mapRepoError(err, "creating bid")
	}

	// 4. Bump the denormalized counter
	if err := s.gigRepo.AdjustBidCount(ctx, gig.ID, 1); err != nil {
		log.Printf("SubmitBid: Error incrementing bid count for gig %s: %v", gig.ID, err)
	}

	s.emitNewBid(gig, bid)

	return bid, nil
}

// WithdrawBid removes a bid while it is still pending. The status-guarded
// delete is the mirror of the hire flow's conditional writes: a withdrawal
// racing a hire simply sees zero affected rows and reports Conflict.
func (s *bidService) WithdrawBid(ctx context.Context, req *dto.WithdrawBidRequest) error {
	bid, err := s.bidRepo.GetByID(ctx, req.BidID)
	if err != nil {
		return mapFetchError(err, ErrBidNotFound, fmt.Sprintf("fetching bid %s for withdrawal", req.BidID))
	}

	// Only the bidder can withdraw
	if bid.FreelancerID != req.UserID {
		log.Printf("WithdrawBid: Forbidden attempt by user %s on bid %s owned by %s", req.UserID, req.BidID, bid.FreelancerID)
		return ErrForbidden
	}

	if bid.Status != models.BidStatusPending {
		log.Printf("WithdrawBid: Attempt to withdraw non-pending bid %s (Status: %s)", bid.ID, bid.Status)
		return ErrBidNotPending
	}

	deleted, err := s.bidRepo.DeleteIfPending(ctx, bid.ID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("deleting bid %s", bid.ID))
	}
	if !deleted {
		// The bid stopped being pending between the check and the delete.
		return ErrBidNotPending
	}

	if err := s.gigRepo.AdjustBidCount(ctx, bid.GigID, -1); err != nil {
		log.Printf("WithdrawBid: Error decrementing bid count for gig %s: %v", bid.GigID, err)
	}

	log.Printf("Bid %s withdrawn by freelancer %s", bid.ID, req.UserID)
	return nil
}

// HireBid selects one pending bid on an open gig: the gig becomes assigned,
// the chosen bid becomes hired, and every other pending bid on the gig is
// rejected. For any set of concurrent hire attempts against the same gig at
// most one succeeds; the rest observe the gig already non-open and get a
// Conflict.
//
// The race is decided by a single status-guarded write (AssignIfOpen), not by
// a multi-statement transaction or any in-process lock. The bid and rejection
// writes run downstream of that won lock. If the process dies between the gig
// and bid writes, the gig stays assigned with its target bid still pending;
// no other bid can ever be hired for it, and ReconcileGigHire repairs the
// record.
func (s *bidService) HireBid(ctx context.Context, req *dto.HireBidRequest) (*models.Gig, *models.Bid, error) {
	// 1. Fetch the bid
	bid, err := s.bidRepo.GetByID(ctx, req.BidID)
	if err != nil {
		return nil, nil, mapFetchError(err, ErrBidNotFound, fmt.Sprintf("fetching bid %s for hire", req.BidID))
	}

	// 2. Fetch the gig
	gig, err := s.gigRepo.GetByID(ctx, bid.GigID)
	if err != nil {
		return nil, nil, mapFetchError(err, ErrGigNotFound, fmt.Sprintf("fetching gig %s for hire", bid.GigID))
	}

	// 3. Ownership check. Deliberately ahead of the state checks so a
	// non-owner always gets Forbidden, even on an already-assigned gig.
	if gig.OwnerID != req.UserID {
		log.Printf("HireBid: Forbidden attempt by user %s on gig %s owned by %s", req.UserID, gig.ID, gig.OwnerID)
		return nil, nil, ErrForbidden
	}

	// 4. State checks as observed right now. These give callers a clean
	// answer on the common paths; the conditional writes below remain the
	// actual arbiters under concurrency.
	if gig.Status != models.GigStatusOpen {
		log.Printf("HireBid: Attempt to hire on non-open gig %s (Status: %s)", gig.ID, gig.Status)
		return nil, nil, ErrGigNotOpen
	}
	if bid.Status != models.BidStatusPending {
		log.Printf("HireBid: Attempt to hire non-pending bid %s (Status: %s)", bid.ID, bid.Status)
		return nil, nil, ErrBidNotPending
	}

	// 5. Claim the gig. Zero affected rows means another caller won the race.
	updatedGig, won, err := s.gigRepo.AssignIfOpen(ctx, gig.ID, bid.FreelancerID)
	if err != nil {
		return nil, nil, mapRepoError(err, fmt.Sprintf("assigning gig %s", gig.ID))
	}
	if !won {
		log.Printf("HireBid: Lost hire race for gig %s (bid %s)", gig.ID, bid.ID)
		return nil, nil, ErrGigNotOpen
	}

	// 6. Promote the chosen bid. Zero affected rows here means the bid was
	// independently withdrawn or processed; the gig stays assigned to this
	// freelancer, which is self-consistent and repairable, never double-hired.
	hiredBid, ok, err := s.bidRepo.MarkHiredIfPending(ctx, bid.ID)
	if err != nil {
		return nil, nil, mapRepoError(err, fmt.Sprintf("marking bid %s hired", bid.ID))
	}
	if !ok {
		log.Printf("HireBid: Bid %s no longer pending after gig %s was claimed", bid.ID, gig.ID)
		return nil, nil, ErrBidNotPending
	}

	// 7. Reject the remaining pending bids
	rejected, err := s.bidRepo.RejectPendingByGig(ctx, gig.ID, bid.ID)
	if err != nil {
		return nil, nil, mapRepoError(err, fmt.Sprintf("rejecting other bids for gig %s", gig.ID))
	}

	log.Printf("Gig %s assigned to freelancer %s via bid %s (%d other bids rejected)",
		gig.ID, bid.FreelancerID, bid.ID, rejected)

	s.emitHired(updatedGig, hiredBid)

	return updatedGig, hiredBid, nil
}

// ListBidsForGig returns the bids on a gig, visible only to the gig owner.
func (s *bidService) ListBidsForGig(ctx context.Context, req *dto.ListGigBidsRequest) ([]models.Bid, error) {
	gig, err := s.gigRepo.GetByID(ctx, req.GigID)
	if err != nil {
		return nil, mapFetchError(err, ErrGigNotFound, fmt.Sprintf("fetching gig %s for listing bids", req.GigID))
	}

	if gig.OwnerID != req.UserID {
		log.Printf("ListBidsForGig: Forbidden attempt by user %s on gig %s owned by %s", req.UserID, req.GigID, gig.OwnerID)
		return nil, ErrForbidden
	}

	bids, err := s.bidRepo.ListByGig(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("listing bids for gig %s", req.GigID))
	}
	return bids, nil
}

// ListMyBids returns the bids submitted by the requesting freelancer.
func (s *bidService) ListMyBids(ctx context.Context, req *dto.ListMyBidsRequest) ([]models.Bid, int, error) {
	bids, total, err := s.bidRepo.ListByFreelancer(ctx, req)
	if err != nil {
		return nil, 0, mapRepoError(err, fmt.Sprintf("listing bids for freelancer %s", req.FreelancerID))
	}
	return bids, total, nil
}

// ReconcileGigHire repairs the partial-failure window of the hire flow: an
// assigned gig whose hired freelancer's bid is still pending (the process
// died between the gig and bid writes). It re-applies the bid promotion and
// the rejection sweep and is safe to run any number of times. Only the gig
// owner may trigger it.
func (s *bidService) ReconcileGigHire(ctx context.Context, req *dto.ReconcileGigRequest) (bool, error) {
	gig, err := s.gigRepo.GetByID(ctx, req.GigID)
	if err != nil {
		return false, mapFetchError(err, ErrGigNotFound, fmt.Sprintf("fetching gig %s for reconciliation", req.GigID))
	}

	if gig.OwnerID != req.UserID {
		log.Printf("ReconcileGigHire: Forbidden attempt by user %s on gig %s owned by %s", req.UserID, gig.ID, gig.OwnerID)
		return false, ErrForbidden
	}

	if gig.Status != models.GigStatusAssigned || gig.HiredFreelancerID == nil {
		return false, nil
	}

	bid, err := s.bidRepo.GetByGigAndFreelancer(ctx, gig.ID, *gig.HiredFreelancerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// The winning bid was withdrawn mid-hire; the gig stays assigned
			// and there is nothing left to promote.
			return false, nil
		}
		return false, mapRepoError(err, fmt.Sprintf("fetching hired bid for gig %s", gig.ID))
	}

	repaired := false
	if bid.Status == models.BidStatusPending {
		if _, ok, err := s.bidRepo.MarkHiredIfPending(ctx, bid.ID); err != nil {
			return false, mapRepoError(err, fmt.Sprintf("re-marking bid %s hired", bid.ID))
		} else if ok {
			repaired = true
		}
	}

	rejected, err := s.bidRepo.RejectPendingByGig(ctx, gig.ID, bid.ID)
	if err != nil {
		return repaired, mapRepoError(err, fmt.Sprintf("rejecting other bids for gig %s", gig.ID))
	}
	if rejected > 0 {
		repaired = true
	}

	if repaired {
		log.Printf("ReconcileGigHire: Repaired gig %s (bid %s)", gig.ID, bid.ID)
	}
	return repaired, nil
}

// emitHired publishes the hired event to the winning freelancer. Fire and
// forget: the hire has already committed, so a delivery failure is logged
// and swallowed.
func (s *bidService) emitHired(gig *models.Gig, bid *models.Bid) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		event := notify.HiredEvent{
			Message:  fmt.Sprintf("You have been hired for %q!", gig.Title),
			GigID:    gig.ID,
			GigTitle: gig.Title,
			Price:    bid.Price,
		}
		if err := s.notifier.NotifyHired(ctx, bid.FreelancerID, event); err != nil {
			log.Printf("HireBid: Failed to deliver hired notification for gig %s: %v", gig.ID, err)
		}
	}()
}

// emitNewBid publishes the new-bid event to the gig owner, best effort.
func (s *bidService) emitNewBid(gig *models.Gig, bid *models.Bid) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		event := notify.NewBidEvent{
			Message:  fmt.Sprintf("A new bid arrived on %q", gig.Title),
			GigID:    gig.ID,
			GigTitle: gig.Title,
			Price:    bid.Price,
		}
		if err := s.notifier.NotifyNewBid(ctx, gig.OwnerID, event); err != nil {
			log.Printf("SubmitBid: Failed to deliver new-bid notification for gig %s: %v", gig.ID, err)
		}
	}()
}
