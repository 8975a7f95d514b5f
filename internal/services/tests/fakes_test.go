package services_test

import (
	"context"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/notify"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/storage"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/google/uuid"
)

// Function-field fakes for the repository interfaces. Each test assigns only
// the methods it expects to be called; an unassigned method panics, which
// surfaces unexpected calls immediately.

type fakeGigRepo struct {
	CreateFn         func(ctx context.Context, req *dto.CreateGigRequest) (*models.Gig, error)
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*models.Gig, error)
	ListOpenFn       func(ctx context.Context, req *dto.ListGigsRequest) ([]models.Gig, int, error)
	ListByOwnerFn    func(ctx context.Context, req *dto.ListOwnerGigsRequest) ([]models.Gig, int, error)
	UpdateIfOpenFn   func(ctx context.Context, req *dto.UpdateGigRequest) (*models.Gig, bool, error)
	DeleteIfOpenFn   func(ctx context.Context, id uuid.UUID) (bool, error)
	AssignIfOpenFn   func(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Gig, bool, error)
	AdjustBidCountFn func(ctx context.Context, gigID uuid.UUID, delta int) error
}

var _ storage.GigRepository = (*fakeGigRepo)(nil)

func (f *fakeGigRepo) Create(ctx context.Context, req *dto.CreateGigRequest) (*models.Gig, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeGigRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeGigRepo) ListOpen(ctx context.Context, req *dto.ListGigsRequest) ([]models.Gig, int, error) {
	return f.ListOpenFn(ctx, req)
}
func (f *fakeGigRepo) ListByOwner(ctx context.Context, req *dto.ListOwnerGigsRequest) ([]models.Gig, int, error) {
	return f.ListByOwnerFn(ctx, req)
}
func (f *fakeGigRepo) UpdateIfOpen(ctx context.Context, req *dto.UpdateGigRequest) (*models.Gig, bool, error) {
	return f.UpdateIfOpenFn(ctx, req)
}
func (f *fakeGigRepo) DeleteIfOpen(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.DeleteIfOpenFn(ctx, id)
}
func (f *fakeGigRepo) AssignIfOpen(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Gig, bool, error) {
	return f.AssignIfOpenFn(ctx, gigID, freelancerID)
}
func (f *fakeGigRepo) AdjustBidCount(ctx context.Context, gigID uuid.UUID, delta int) error {
	if f.AdjustBidCountFn == nil {
		return nil
	}
	return f.AdjustBidCountFn(ctx, gigID, delta)
}

type fakeBidRepo struct {
	CreateFn                func(ctx context.Context, req *dto.CreateBidRecord) (*models.Bid, error)
	GetByIDFn               func(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	GetByGigAndFreelancerFn func(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error)
	ListByGigFn             func(ctx context.Context, req *dto.ListGigBidsRequest) ([]models.Bid, error)
	ListByFreelancerFn      func(ctx context.Context, req *dto.ListMyBidsRequest) ([]models.Bid, int, error)
	MarkHiredIfPendingFn    func(ctx context.Context, id uuid.UUID) (*models.Bid, bool, error)
	RejectPendingByGigFn    func(ctx context.Context, gigID, excludeBidID uuid.UUID) (int64, error)
	DeleteIfPendingFn       func(ctx context.Context, id uuid.UUID) (bool, error)
}

var _ storage.BidRepository = (*fakeBidRepo)(nil)

func (f *fakeBidRepo) Create(ctx context.Context, req *dto.CreateBidRecord) (*models.Bid, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeBidRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeBidRepo) GetByGigAndFreelancer(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error) {
	return f.GetByGigAndFreelancerFn(ctx, gigID, freelancerID)
}
func (f *fakeBidRepo) ListByGig(ctx context.Context, req *dto.ListGigBidsRequest) ([]models.Bid, error) {
	return f.ListByGigFn(ctx, req)
}
func (f *fakeBidRepo) ListByFreelancer(ctx context.Context, req *dto.ListMyBidsRequest) ([]models.Bid, int, error) {
	return f.ListByFreelancerFn(ctx, req)
}
func (f *fakeBidRepo) MarkHiredIfPending(ctx context.Context, id uuid.UUID) (*models.Bid, bool, error) {
	return f.MarkHiredIfPendingFn(ctx, id)
}
func (f *fakeBidRepo) RejectPendingByGig(ctx context.Context, gigID, excludeBidID uuid.UUID) (int64, error) {
	return f.RejectPendingByGigFn(ctx, gigID, excludeBidID)
}
func (f *fakeBidRepo) DeleteIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.DeleteIfPendingFn(ctx, id)
}

type fakeUserRepo struct {
	CreateFn     func(ctx context.Context, req *dto.CreateUserRecord) (*models.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*models.User, error)
}

var _ storage.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(ctx context.Context, req *dto.CreateUserRecord) (*models.User, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.GetByEmailFn(ctx, email)
}

// recordedEvent captures a delivered notification for assertions.
type recordedEvent struct {
	UserID uuid.UUID
	Hired  *notify.HiredEvent
	NewBid *notify.NewBidEvent
}

// recordingNotifier collects events on a buffered channel so tests can wait
// for the fire-and-forget goroutine without sleeping.
type recordingNotifier struct {
	events chan recordedEvent
}

var _ notify.Notifier = (*recordingNotifier)(nil)

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{events: make(chan recordedEvent, 16)}
}

func (r *recordingNotifier) NotifyHired(_ context.Context, freelancerID uuid.UUID, event notify.HiredEvent) error {
	r.events <- recordedEvent{UserID: freelancerID, Hired: &event}
	return nil
}

func (r *recordingNotifier) NotifyNewBid(_ context.Context, ownerID uuid.UUID, event notify.NewBidEvent) error {
	r.events <- recordedEvent{UserID: ownerID, NewBid: &event}
	return nil
}
