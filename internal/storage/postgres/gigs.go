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

// GigRepo implements the storage.GigRepository interface using pgx.
type GigRepo struct {
	db *DB
}

// NewGigRepo creates a new GigRepo.
func NewGigRepo(db *DB) *GigRepo {
	return &GigRepo{db: db}
}

// Compile-time check to ensure GigRepo implements GigRepository
var _ storage.GigRepository = (*GigRepo)(nil)

var gigColumns = []string{
	"id", "title", "description", "budget", "category", "status",
	"owner_id", "hired_freelancer_id", "deadline", "bid_count",
	"created_at", "updated_at",
}

func scanGig(row pgx.Row) (*models.Gig, error) {
	var g models.Gig
	err := row.Scan(
		&g.ID, &g.Title, &g.Description, &g.Budget, &g.Category, &g.Status,
		&g.OwnerID, &g.HiredFreelancerID, &g.Deadline, &g.BidCount,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GigRepo) Create(ctx context.Context, req *dto.CreateGigRequest) (*models.Gig, error) {
	category := req.Category
	if category == "" {
		category = models.GigCategoryOther
	}

	query, args, err := r.db.Builder.
		Insert("gigs").
		Columns("title", "description", "budget", "category", "status", "owner_id", "deadline").
		Values(req.Title, req.Description, req.Budget, category, models.GigStatusOpen, req.OwnerID, req.Deadline).
		Suffix("RETURNING " + joinColumns(gigColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build gig insert: %w", err)
	}

	gig, err := scanGig(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("gig owner does not exist: %w", storage.ErrConflict)
		}
		log.Printf("Error creating gig: %v", err)
		return nil, fmt.Errorf("failed to create gig: %w", err)
	}
	return gig, nil
}

func (r *GigRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	query, args, err := r.db.Builder.
		Select(gigColumns...).
		From("gigs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build gig select: %w", err)
	}

	gig, err := scanGig(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error retrieving gig by ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to get gig by ID %s: %w", id, err)
	}
	return gig, nil
}

func (r *GigRepo) ListOpen(ctx context.Context, req *dto.ListGigsRequest) ([]models.Gig, int, error) {
	filter := squirrel.And{squirrel.Eq{"status": models.GigStatusOpen}}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		filter = append(filter, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if req.Category != "" {
		filter = append(filter, squirrel.Eq{"category": req.Category})
	}

	return r.list(ctx, filter, req.Limit, req.Offset)
}

func (r *GigRepo) ListByOwner(ctx context.Context, req *dto.ListOwnerGigsRequest) ([]models.Gig, int, error) {
	filter := squirrel.And{squirrel.Eq{"owner_id": req.OwnerID}}
	if req.Status != nil {
		filter = append(filter, squirrel.Eq{"status": *req.Status})
	}

	return r.list(ctx, filter, req.Limit, req.Offset)
}

func (r *GigRepo) list(ctx context.Context, filter squirrel.Sqlizer, limit, offset int) ([]models.Gig, int, error) {
	countQuery, countArgs, err := r.db.Builder.
		Select("COUNT(*)").
		From("gigs").
		Where(filter).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build gig count: %w", err)
	}

	var total int
	if err := r.db.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Printf("Error counting gigs: %v", err)
		return nil, 0, fmt.Errorf("failed to count gigs: %w", err)
	}

	query, args, err := r.db.Builder.
		Select(gigColumns...).
		From("gigs").
		Where(filter).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build gig list: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing gigs: %v", err)
		return nil, 0, fmt.Errorf("failed to list gigs: %w", err)
	}
	defer rows.Close()

	gigs := make([]models.Gig, 0, limit)
	for rows.Next() {
		gig, err := scanGig(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan gig row: %w", err)
		}
		gigs = append(gigs, *gig)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed reading gig rows: %w", err)
	}

	return gigs, total, nil
}

// UpdateIfOpen edits a gig's details only while its status is still 'open'.
// The returned bool reports whether a row was affected; false means the gig
// left the open state between the caller's check and this write.
func (r *GigRepo) UpdateIfOpen(ctx context.Context, req *dto.UpdateGigRequest) (*models.Gig, bool, error) {
	category := req.Category
	if category == "" {
		category = models.GigCategoryOther
	}

	query, args, err := r.db.Builder.
		Update("gigs").
		Set("title", req.Title).
		Set("description", req.Description).
		Set("budget", req.Budget).
		Set("category", category).
		Set("deadline", req.Deadline).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": req.ID, "status": models.GigStatusOpen}).
		Suffix("RETURNING " + joinColumns(gigColumns)).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build gig update: %w", err)
	}

	gig, err := scanGig(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		log.Printf("Error updating gig %s: %v", req.ID, err)
		return nil, false, fmt.Errorf("failed to update gig %s: %w", req.ID, err)
	}
	return gig, true, nil
}

// DeleteIfOpen removes a gig only while its status is still 'open'. Bids are
// removed by the ON DELETE CASCADE on bids.gig_id.
func (r *GigRepo) DeleteIfOpen(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := r.db.Builder.
		Delete("gigs").
		Where(squirrel.Eq{"id": id, "status": models.GigStatusOpen}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build gig delete: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		log.Printf("Error deleting gig %s: %v", id, err)
		return false, fmt.Errorf("failed to delete gig %s: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

// AssignIfOpen is the single conditional write that decides the hire race:
// it moves the gig to 'assigned' and records the hired freelancer only if
// the status is still 'open' at write time. Exactly one concurrent caller
// can observe an affected row; everyone else gets ok=false.
func (r *GigRepo) AssignIfOpen(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Gig, bool, error) {
	query, args, err := r.db.Builder.
		Update("gigs").
		Set("status", models.GigStatusAssigned).
		Set("hired_freelancer_id", freelancerID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": gigID, "status": models.GigStatusOpen}).
		Suffix("RETURNING " + joinColumns(gigColumns)).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build gig assign: %w", err)
	}

	gig, err := scanGig(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		log.Printf("Error assigning gig %s: %v", gigID, err)
		return nil, false, fmt.Errorf("failed to assign gig %s: %w", gigID, err)
	}
	return gig, true, nil
}

// AdjustBidCount shifts the denormalized bid counter, clamped at zero.
func (r *GigRepo) AdjustBidCount(ctx context.Context, gigID uuid.UUID, delta int) error {
	query, args, err := r.db.Builder.
		Update("gigs").
		Set("bid_count", squirrel.Expr("GREATEST(bid_count + ?, 0)", delta)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": gigID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build bid count update: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		log.Printf("Error adjusting bid count for gig %s: %v", gigID, err)
		return fmt.Errorf("failed to adjust bid count for gig %s: %w", gigID, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
