package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/notify"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/services"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/storage"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is a mutex-guarded in-memory implementation of the gig and bid
// repositories. Its conditional writes are atomic under the mutex, matching
// the row-level atomicity the SQL conditional updates provide, so it can
// referee real goroutine races through the service.
type memoryStore struct {
	mu   sync.Mutex
	gigs map[uuid.UUID]*models.Gig
	bids map[uuid.UUID]*models.Bid
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		gigs: make(map[uuid.UUID]*models.Gig),
		bids: make(map[uuid.UUID]*models.Bid),
	}
}

func (s *memoryStore) addGig(gig *models.Gig) { s.gigs[gig.ID] = gig }
func (s *memoryStore) addBid(bid *models.Bid) { s.bids[bid.ID] = bid }

// --- GigRepository ---

func (s *memoryStore) Create(ctx context.Context, req *dto.CreateGigRequest) (*models.Gig, error) {
	return nil, errors.New("not implemented")
}

func (s *memoryStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gig, ok := s.gigs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *gig
	return &copied, nil
}

func (s *memoryStore) ListOpen(ctx context.Context, req *dto.ListGigsRequest) ([]models.Gig, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (s *memoryStore) ListByOwner(ctx context.Context, req *dto.ListOwnerGigsRequest) ([]models.Gig, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (s *memoryStore) UpdateIfOpen(ctx context.Context, req *dto.UpdateGigRequest) (*models.Gig, bool, error) {
	return nil, false, errors.New("not implemented")
}

func (s *memoryStore) DeleteIfOpen(ctx context.Context, id uuid.UUID) (bool, error) {
	return false, errors.New("not implemented")
}

func (s *memoryStore) AssignIfOpen(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Gig, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gig, ok := s.gigs[gigID]
	if !ok || gig.Status != models.GigStatusOpen {
		return nil, false, nil
	}
	gig.Status = models.GigStatusAssigned
	fID := freelancerID
	gig.HiredFreelancerID = &fID
	copied := *gig
	return &copied, true, nil
}

func (s *memoryStore) AdjustBidCount(ctx context.Context, gigID uuid.UUID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gig, ok := s.gigs[gigID]; ok {
		gig.BidCount += delta
		if gig.BidCount < 0 {
			gig.BidCount = 0
		}
	}
	return nil
}

// --- BidRepository ---

func (s *memoryStore) CreateBid(ctx context.Context, req *dto.CreateBidRecord) (*models.Bid, error) {
	return nil, errors.New("not implemented")
}

func (s *memoryStore) GetBidByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bid, ok := s.bids[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *bid
	return &copied, nil
}

func (s *memoryStore) GetByGigAndFreelancer(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, bid := range s.bids {
		if bid.GigID == gigID && bid.FreelancerID == freelancerID {
			copied := *bid
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memoryStore) ListByGig(ctx context.Context, req *dto.ListGigBidsRequest) ([]models.Bid, error) {
	return nil, errors.New("not implemented")
}

func (s *memoryStore) ListByFreelancer(ctx context.Context, req *dto.ListMyBidsRequest) ([]models.Bid, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (s *memoryStore) MarkHiredIfPending(ctx context.Context, id uuid.UUID) (*models.Bid, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bid, ok := s.bids[id]
	if !ok || bid.Status != models.BidStatusPending {
		return nil, false, nil
	}
	bid.Status = models.BidStatusHired
	copied := *bid
	return &copied, true, nil
}

func (s *memoryStore) RejectPendingByGig(ctx context.Context, gigID, excludeBidID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, bid := range s.bids {
		if bid.GigID == gigID && bid.ID != excludeBidID && bid.Status == models.BidStatusPending {
			bid.Status = models.BidStatusRejected
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) DeleteIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bid, ok := s.bids[id]
	if !ok || bid.Status != models.BidStatusPending {
		return false, nil
	}
	delete(s.bids, id)
	return true, nil
}

// bidRepoAdapter renames the methods that collide between the two interfaces
// on memoryStore.
type bidRepoAdapter struct{ store *memoryStore }

var _ storage.BidRepository = (*bidRepoAdapter)(nil)

func (a *bidRepoAdapter) Create(ctx context.Context, req *dto.CreateBidRecord) (*models.Bid, error) {
	return a.store.CreateBid(ctx, req)
}
func (a *bidRepoAdapter) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	return a.store.GetBidByID(ctx, id)
}
func (a *bidRepoAdapter) GetByGigAndFreelancer(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error) {
	return a.store.GetByGigAndFreelancer(ctx, gigID, freelancerID)
}
func (a *bidRepoAdapter) ListByGig(ctx context.Context, req *dto.ListGigBidsRequest) ([]models.Bid, error) {
	return a.store.ListByGig(ctx, req)
}
func (a *bidRepoAdapter) ListByFreelancer(ctx context.Context, req *dto.ListMyBidsRequest) ([]models.Bid, int, error) {
	return a.store.ListByFreelancer(ctx, req)
}
func (a *bidRepoAdapter) MarkHiredIfPending(ctx context.Context, id uuid.UUID) (*models.Bid, bool, error) {
	return a.store.MarkHiredIfPending(ctx, id)
}
func (a *bidRepoAdapter) RejectPendingByGig(ctx context.Context, gigID, excludeBidID uuid.UUID) (int64, error) {
	return a.store.RejectPendingByGig(ctx, gigID, excludeBidID)
}
func (a *bidRepoAdapter) DeleteIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.store.DeleteIfPending(ctx, id)
}

var _ storage.GigRepository = (*memoryStore)(nil)

func TestHireBid_ConcurrentAttempts_ExactlyOneWins(t *testing.T) {
	const attempts = 32

	ownerID := uuid.New()
	store := newMemoryStore()
	gig := &models.Gig{
		ID:      uuid.New(),
		Title:   "Concurrent hire target",
		Status:  models.GigStatusOpen,
		OwnerID: ownerID,
	}
	store.addGig(gig)

	bidIDs := make([]uuid.UUID, attempts)
	for i := 0; i < attempts; i++ {
		bid := &models.Bid{
			ID:           uuid.New(),
			GigID:        gig.ID,
			FreelancerID: uuid.New(),
			Price:        float64(100 + i),
			Status:       models.BidStatusPending,
		}
		store.addBid(bid)
		bidIDs[i] = bid.ID
	}

	svc := services.NewBidService(&bidRepoAdapter{store: store}, store, notify.NopNotifier{})

	var wg sync.WaitGroup
	results := make([]error, attempts)
	winners := make([]*models.Bid, attempts)

	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, bid, err := svc.HireBid(context.Background(), &dto.HireBidRequest{
				BidID:  bidIDs[i],
				UserID: ownerID,
			})
			results[i] = err
			winners[i] = bid
		}(i)
	}
	close(start)
	wg.Wait()

	var successes int
	var winningBid *models.Bid
	for i, err := range results {
		if err == nil {
			successes++
			winningBid = winners[i]
		} else {
			assert.True(t, errors.Is(err, services.ErrConflict), "loser %d got %v, want conflict", i, err)
		}
	}
	require.Equal(t, 1, successes, "exactly one concurrent hire must succeed")
	require.NotNil(t, winningBid)

	// Final store state: gig assigned to the winner, winning bid hired,
	// every other bid rejected.
	store.mu.Lock()
	defer store.mu.Unlock()

	finalGig := store.gigs[gig.ID]
	assert.Equal(t, models.GigStatusAssigned, finalGig.Status)
	require.NotNil(t, finalGig.HiredFreelancerID)
	assert.Equal(t, winningBid.FreelancerID, *finalGig.HiredFreelancerID)

	for id, bid := range store.bids {
		if id == winningBid.ID {
			assert.Equal(t, models.BidStatusHired, bid.Status)
		} else {
			assert.Equal(t, models.BidStatusRejected, bid.Status, "bid %s should be rejected", id)
		}
	}
}

func TestHireBid_SequentialSecondHireLoses(t *testing.T) {
	ownerID := uuid.New()
	store := newMemoryStore()
	gig := &models.Gig{
		ID:      uuid.New(),
		Title:   "Sequential hire target",
		Status:  models.GigStatusOpen,
		OwnerID: ownerID,
	}
	store.addGig(gig)

	first := &models.Bid{ID: uuid.New(), GigID: gig.ID, FreelancerID: uuid.New(), Status: models.BidStatusPending}
	second := &models.Bid{ID: uuid.New(), GigID: gig.ID, FreelancerID: uuid.New(), Status: models.BidStatusPending}
	store.addBid(first)
	store.addBid(second)

	svc := services.NewBidService(&bidRepoAdapter{store: store}, store, notify.NopNotifier{})
	ctx := context.Background()

	_, _, err := svc.HireBid(ctx, &dto.HireBidRequest{BidID: first.ID, UserID: ownerID})
	require.NoError(t, err)

	_, _, err = svc.HireBid(ctx, &dto.HireBidRequest{BidID: second.ID, UserID: ownerID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrGigNotOpen))
}

func TestHireBid_WithdrawRacingHire_NeverBothSucceed(t *testing.T) {
	// A freelancer withdrawing while the owner hires the same bid: whatever
	// the interleaving, exactly one of the two operations wins.
	const rounds = 50

	for round := 0; round < rounds; round++ {
		ownerID := uuid.New()
		freelancerID := uuid.New()
		store := newMemoryStore()
		gig := &models.Gig{ID: uuid.New(), Title: "Contested gig", Status: models.GigStatusOpen, OwnerID: ownerID}
		store.addGig(gig)
		bid := &models.Bid{ID: uuid.New(), GigID: gig.ID, FreelancerID: freelancerID, Status: models.BidStatusPending}
		store.addBid(bid)

		svc := services.NewBidService(&bidRepoAdapter{store: store}, store, notify.NopNotifier{})

		var wg sync.WaitGroup
		var hireErr, withdrawErr error
		start := make(chan struct{})

		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, _, hireErr = svc.HireBid(context.Background(), &dto.HireBidRequest{BidID: bid.ID, UserID: ownerID})
		}()
		go func() {
			defer wg.Done()
			<-start
			withdrawErr = svc.WithdrawBid(context.Background(), &dto.WithdrawBidRequest{BidID: bid.ID, UserID: freelancerID})
		}()
		close(start)
		wg.Wait()

		require.False(t, hireErr == nil && withdrawErr == nil,
			"round %d: hire and withdraw both succeeded", round)

		store.mu.Lock()
		finalGig := store.gigs[gig.ID]
		_, bidExists := store.bids[bid.ID]
		store.mu.Unlock()

		if withdrawErr == nil {
			assert.False(t, bidExists, "round %d: withdrawn bid still present", round)
		}
		if hireErr == nil {
			assert.Equal(t, models.GigStatusAssigned, finalGig.Status, "round %d", round)
			assert.True(t, bidExists, "round %d: hired bid missing", round)
		}
	}
}
