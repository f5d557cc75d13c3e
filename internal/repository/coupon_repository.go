package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = `
	id, code, type, value, min_order_value, max_uses, used_count,
	valid_from, valid_until, store_id, is_active, created_by, created_at, updated_at
`

// Create inserts a new coupon definition.
func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	query := `
		INSERT INTO coupons (
			id, code, type, value, min_order_value, max_uses, used_count,
			valid_from, valid_until, store_id, is_active, created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.Type,
		coupon.Value,
		coupon.MinOrderValue,
		coupon.MaxUses,
		coupon.UsedCount,
		coupon.ValidFrom,
		coupon.ValidUntil,
		coupon.StoreID,
		coupon.IsActive,
		coupon.CreatedBy,
		coupon.CreatedAt,
		coupon.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().Str("code", coupon.Code).Msg("duplicate coupon code")
			return model.ErrDuplicateCode
		}
		r.logger.Error().Err(err).Str("code", coupon.Code).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	r.logger.Debug().
		Str("coupon_id", coupon.ID.String()).
		Str("code", coupon.Code).
		Msg("coupon created successfully")

	return nil
}

// Update rewrites a coupon's mutable columns. used_count is never touched
// here; the redemption ledger is its only writer.
func (r *couponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	query := `
		UPDATE coupons
		SET code = $2,
		    type = $3,
		    value = $4,
		    min_order_value = $5,
		    max_uses = $6,
		    valid_from = $7,
		    valid_until = $8,
		    store_id = $9,
		    is_active = $10,
		    updated_at = $11
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.Type,
		coupon.Value,
		coupon.MinOrderValue,
		coupon.MaxUses,
		coupon.ValidFrom,
		coupon.ValidUntil,
		coupon.StoreID,
		coupon.IsActive,
		coupon.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().Str("code", coupon.Code).Msg("duplicate coupon code on update")
			return model.ErrDuplicateCode
		}
		r.logger.Error().Err(err).Str("coupon_id", coupon.ID.String()).Msg("failed to update coupon")
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("coupon_id", coupon.ID.String()).Msg("coupon not found for update")
		return model.ErrCouponNotFound
	}

	return nil
}

// Delete removes a coupon definition unconditionally. Redemption history is
// intentionally left in place for audit.
func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("coupon_id", id.String()).Msg("coupon not found for delete")
		return model.ErrCouponNotFound
	}

	r.logger.Info().Str("coupon_id", id.String()).Msg("coupon deleted")

	return nil
}

// GetByID retrieves a coupon by its ID.
func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	coupon, err := r.scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("coupon_id", id.String()).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return coupon, nil
}

// GetByCode retrieves a coupon by its normalized code. Callers are expected
// to pass codes through model.NormalizeCode; the comparison here is exact.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	coupon, err := r.scanCoupon(r.pool.QueryRow(ctx, query, model.NormalizeCode(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("coupon not found by code")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon by code")
		return nil, fmt.Errorf("failed to query coupon by code: %w", err)
	}

	return coupon, nil
}

// List retrieves coupons matching the filter, newest first. ActiveOnly
// evaluates the full derived state (enabled, in window, not exhausted).
func (r *couponRepository) List(ctx context.Context, filter CouponFilter) ([]model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE 1=1`
	args := []any{}

	if filter.StoreID != nil {
		args = append(args, *filter.StoreID)
		query += fmt.Sprintf(" AND store_id = $%d", len(args))
	}

	if filter.ActiveOnly {
		query += ` AND is_active
			AND valid_from <= NOW() AND valid_until >= NOW()
			AND (max_uses IS NULL OR used_count < max_uses)`
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		coupon, err := r.scanCoupon(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *coupon)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// scanCoupon scans a single coupon row.
func (r *couponRepository) scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Type,
		&c.Value,
		&c.MinOrderValue,
		&c.MaxUses,
		&c.UsedCount,
		&c.ValidFrom,
		&c.ValidUntil,
		&c.StoreID,
		&c.IsActive,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
