package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/storage"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BidRepo implements the storage.BidRepository interface using pgx.
type BidRepo struct {
	db *DB
}

// NewBidRepo creates a new BidRepo.
func NewBidRepo(db *DB) *BidRepo {
	return &BidRepo{db: db}
}

// Compile-time check to ensure BidRepo implements BidRepository
var _ storage.BidRepository = (*BidRepo)(nil)

var bidColumns = []string{
	"id", "gig_id", "freelancer_id", "message", "price", "status",
	"created_at", "updated_at",
}

func scanBid(row pgx.Row) (*models.Bid, error) {
	var b models.Bid
	err := row.Scan(
		&b.ID, &b.GigID, &b.FreelancerID, &b.Message, &b.Price, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a pending bid. The unique index on (gig_id, freelancer_id)
// is the backstop against duplicate-bid races; a violation surfaces as
// storage.ErrConflict.
func (r *BidRepo) Create(ctx context.Context, req *dto.CreateBidRecord) (*models.Bid, error) {
	query, args, err := r.db.Builder.
		Insert("bids").
		Columns("gig_id", "freelancer_id", "message", "price", "status").
		Values(req.GigID, req.FreelancerID, req.Message, req.Price, models.BidStatusPending).
		Suffix("RETURNING " + joinColumns(bidColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bid insert: %w", err)
	}

	bid, err := scanBid(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("freelancer already bid on this gig: %w", storage.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error creating bid: %v", err)
		return nil, fmt.Errorf("failed to create bid: %w", err)
	}
	return bid, nil
}

func (r *BidRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	query, args, err := r.db.Builder.
		Select(bidColumns...).
		From("bids").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bid select: %w", err)
	}

	bid, err := scanBid(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error retrieving bid by ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to get bid by ID %s: %w", id, err)
	}
	return bid, nil
}

func (r *BidRepo) GetByGigAndFreelancer(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error) {
	query, args, err := r.db.Builder.
		Select(bidColumns...).
		From("bids").
		Where(squirrel.Eq{"gig_id": gigID, "freelancer_id": freelancerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bid select: %w", err)
	}

	bid, err := scanBid(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error retrieving bid for gig %s and freelancer %s: %v", gigID, freelancerID, err)
		return nil, fmt.Errorf("failed to get bid for gig %s: %w", gigID, err)
	}
	return bid, nil
}

func (r *BidRepo) ListByGig(ctx context.Context, req *dto.ListGigBidsRequest) ([]models.Bid, error) {
	query, args, err := r.db.Builder.
		Select(bidColumns...).
		From("bids").
		Where(squirrel.Eq{"gig_id": req.GigID}).
		OrderBy("created_at DESC").
		Limit(uint64(req.Limit)).
		Offset(uint64(req.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bid list: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing bids for gig %s: %v", req.GigID, err)
		return nil, fmt.Errorf("failed to list bids for gig %s: %w", req.GigID, err)
	}
	defer rows.Close()

	return collectBids(rows, req.Limit)
}

func (r *BidRepo) ListByFreelancer(ctx context.Context, req *dto.ListMyBidsRequest) ([]models.Bid, int, error) {
	countQuery, countArgs, err := r.db.Builder.
		Select("COUNT(*)").
		From("bids").
		Where(squirrel.Eq{"freelancer_id": req.FreelancerID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build bid count: %w", err)
	}

	var total int
	if err := r.db.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Printf("Error counting bids for freelancer %s: %v", req.FreelancerID, err)
		return nil, 0, fmt.Errorf("failed to count bids: %w", err)
	}

	query, args, err := r.db.Builder.
		Select(bidColumns...).
		From("bids").
		Where(squirrel.Eq{"freelancer_id": req.FreelancerID}).
		OrderBy("created_at DESC").
		Limit(uint64(req.Limit)).
		Offset(uint64(req.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build bid list: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing bids for freelancer %s: %v", req.FreelancerID, err)
		return nil, 0, fmt.Errorf("failed to list bids: %w", err)
	}
	defer rows.Close()

	bids, err := collectBids(rows, req.Limit)
	if err != nil {
		return nil, 0, err
	}
	return bids, total, nil
}

// MarkHiredIfPending promotes a bid to 'hired' only while it is still
// pending. ok=false means the bid was withdrawn or already processed.
func (r *BidRepo) MarkHiredIfPending(ctx context.Context, id uuid.UUID) (*models.Bid, bool, error) {
	query, args, err := r.db.Builder.
		Update("bids").
		Set("status", models.BidStatusHired).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": models.BidStatusPending}).
		Suffix("RETURNING " + joinColumns(bidColumns)).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build bid hire update: %w", err)
	}

	bid, err := scanBid(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		log.Printf("Error marking bid %s hired: %v", id, err)
		return nil, false, fmt.Errorf("failed to mark bid %s hired: %w", id, err)
	}
	return bid, true, nil
}

// RejectPendingByGig sweeps every still-pending bid on the gig (except the
// hired one) to 'rejected'. Runs downstream of the won gig lock, so there is
// no race to guard here.
func (r *BidRepo) RejectPendingByGig(ctx context.Context, gigID, excludeBidID uuid.UUID) (int64, error) {
	query, args, err := r.db.Builder.
		Update("bids").
		Set("status", models.BidStatusRejected).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"gig_id": gigID, "status": models.BidStatusPending}).
		Where(squirrel.NotEq{"id": excludeBidID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build bid reject update: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		log.Printf("Error rejecting pending bids for gig %s: %v", gigID, err)
		return 0, fmt.Errorf("failed to reject pending bids for gig %s: %w", gigID, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteIfPending removes a bid only while it is still pending. ok=false
// means the bid was already hired or rejected.
func (r *BidRepo) DeleteIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := r.db.Builder.
		Delete("bids").
		Where(squirrel.Eq{"id": id, "status": models.BidStatusPending}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build bid delete: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		log.Printf("Error deleting bid %s: %v", id, err)
		return false, fmt.Errorf("failed to delete bid %s: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func collectBids(rows pgx.Rows, capacity int) ([]models.Bid, error) {
	bids := make([]models.Bid, 0, capacity)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid row: %w", err)
		}
		bids = append(bids, *bid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading bid rows: %w", err)
	}
	return bids, nil
}
