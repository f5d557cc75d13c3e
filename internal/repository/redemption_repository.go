package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// redemptionRepository implements the RedemptionRepository interface using
// PostgreSQL.
type redemptionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRedemptionRepository creates a new PostgreSQL-backed redemption ledger.
func NewRedemptionRepository(pool *pgxpool.Pool, logger zerolog.Logger) RedemptionRepository {
	return &redemptionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "redemption").Logger(),
	}
}

// Redeem atomically increments the coupon's used_count and appends the
// redemption record in one transaction.
//
// The cap check lives inside the UPDATE's WHERE clause, not in application
// code: concurrent redemptions serialize on the coupon row, so used_count can
// never exceed max_uses regardless of interleaving.
func (r *redemptionRepository) Redeem(ctx context.Context, req *model.RedeemCouponRequest) (*model.Redemption, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
	}()

	increment := `
		UPDATE coupons
		SET used_count = used_count + 1,
		    updated_at = $2
		WHERE id = $1
		  AND (max_uses IS NULL OR used_count < max_uses)
	`

	now := time.Now()
	tag, err := tx.Exec(ctx, increment, req.CouponID, now)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", req.CouponID.String()).Msg("failed to increment usage counter")
		return nil, fmt.Errorf("failed to increment usage counter: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// The conditional update matched nothing: either the coupon is gone
		// or its cap is reached. Disambiguate within the same transaction.
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM coupons WHERE id = $1)`, req.CouponID).Scan(&exists)
		if err != nil {
			r.logger.Error().Err(err).Str("coupon_id", req.CouponID.String()).Msg("failed to check coupon existence")
			return nil, fmt.Errorf("failed to check coupon existence: %w", err)
		}

		if !exists {
			r.logger.Debug().Str("coupon_id", req.CouponID.String()).Msg("coupon not found for redemption")
			return nil, model.ErrCouponNotFound
		}

		r.logger.Info().
			Str("coupon_id", req.CouponID.String()).
			Str("user_id", req.UserID.String()).
			Msg("redemption rejected, usage cap reached")
		return nil, model.ErrUsageExceeded
	}

	redemption := &model.Redemption{
		ID:              uuid.New(),
		CouponID:        req.CouponID,
		UserID:          req.UserID,
		OrderID:         req.OrderID,
		DiscountApplied: req.DiscountApplied,
		UsedAt:          now,
	}

	insert := `
		INSERT INTO coupon_redemptions (id, coupon_id, user_id, order_id, discount_applied, used_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, insert,
		redemption.ID,
		redemption.CouponID,
		redemption.UserID,
		redemption.OrderID,
		redemption.DiscountApplied,
		redemption.UsedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", req.CouponID.String()).Msg("failed to insert redemption record")
		return nil, fmt.Errorf("failed to insert redemption record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("coupon_id", req.CouponID.String()).Msg("failed to commit redemption")
		return nil, fmt.Errorf("failed to commit redemption: %w", err)
	}

	r.logger.Info().
		Str("coupon_id", redemption.CouponID.String()).
		Str("order_id", redemption.OrderID.String()).
		Float64("discount_applied", redemption.DiscountApplied).
		Msg("coupon redeemed")

	return redemption, nil
}

// ListByCoupon retrieves redemption records for a coupon, newest first.
func (r *redemptionRepository) ListByCoupon(ctx context.Context, couponID uuid.UUID, limit, offset int) ([]model.Redemption, error) {
	query := `
		SELECT id, coupon_id, user_id, order_id, discount_applied, used_at
		FROM coupon_redemptions
		WHERE coupon_id = $1
		ORDER BY used_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, couponID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", couponID.String()).Msg("failed to query redemptions")
		return nil, fmt.Errorf("failed to query redemptions: %w", err)
	}
	defer rows.Close()

	var redemptions []model.Redemption
	for rows.Next() {
		var rec model.Redemption
		err := rows.Scan(&rec.ID, &rec.CouponID, &rec.UserID, &rec.OrderID, &rec.DiscountApplied, &rec.UsedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan redemption row")
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		redemptions = append(redemptions, rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating redemption rows")
		return nil, fmt.Errorf("error iterating redemptions: %w", err)
	}

	return redemptions, nil
}
