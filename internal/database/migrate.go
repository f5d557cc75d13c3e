package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// schema is the coupon engine's DDL. coupon_redemptions deliberately carries
// no foreign key to coupons: redemption history must survive administrative
// deletion of a coupon definition.
const schema = `
	CREATE TABLE IF NOT EXISTS stores (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS coupons (
		id UUID PRIMARY KEY,
		code VARCHAR(50) NOT NULL UNIQUE,
		type VARCHAR(20) NOT NULL,
		value NUMERIC(10, 2) NOT NULL CHECK (value >= 0.01),
		min_order_value NUMERIC(10, 2) CHECK (min_order_value >= 0),
		max_uses INTEGER CHECK (max_uses >= 1),
		used_count INTEGER NOT NULL DEFAULT 0 CHECK (used_count >= 0),
		valid_from TIMESTAMPTZ NOT NULL,
		valid_until TIMESTAMPTZ NOT NULL,
		store_id UUID REFERENCES stores(id),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CHECK (valid_from < valid_until)
	);

	CREATE INDEX IF NOT EXISTS idx_coupons_store_id ON coupons (store_id);

	CREATE TABLE IF NOT EXISTS coupon_redemptions (
		id UUID PRIMARY KEY,
		coupon_id UUID NOT NULL,
		user_id UUID NOT NULL,
		order_id UUID NOT NULL,
		discount_applied NUMERIC(10, 2) NOT NULL CHECK (discount_applied >= 0),
		used_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_coupon_redemptions_coupon_id
		ON coupon_redemptions (coupon_id, used_at DESC);
`

// Migrate applies the engine schema. Statements are idempotent so repeated
// startup runs are safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info().Msg("database schema applied")

	return nil
}
