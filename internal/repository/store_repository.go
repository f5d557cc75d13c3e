package repository

import (
	"context"
	"fmt"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// storeRepository implements the StoreRepository interface using PostgreSQL.
type storeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewStoreRepository creates a new PostgreSQL-backed store repository.
func NewStoreRepository(pool *pgxpool.Pool, logger zerolog.Logger) StoreRepository {
	return &storeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "store").Logger(),
	}
}

// Exists reports whether a store with the given ID exists.
func (r *storeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stores WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("store_id", id.String()).Msg("failed to check store existence")
		return false, fmt.Errorf("failed to check store existence: %w", err)
	}

	return exists, nil
}

// Create inserts a store.
func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	query := `
		INSERT INTO stores (id, name, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, store.ID, store.Name, store.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("store_id", store.ID.String()).Msg("failed to create store")
		return fmt.Errorf("failed to create store: %w", err)
	}

	return nil
}
