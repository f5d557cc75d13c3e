package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertCoupon(t *testing.T, repo repository.CouponRepository, code string, maxUses *int) *model.Coupon {
	t.Helper()

	now := time.Now()
	c := &model.Coupon{
		ID:         uuid.New(),
		Code:       model.NormalizeCode(code),
		Type:       model.CouponTypePercentage,
		Value:      10,
		MaxUses:    maxUses,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(24 * time.Hour),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	require.NoError(t, repo.Create(context.Background(), c))

	return c
}

func TestCouponRepository_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	repo := repository.NewCouponRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	created := insertCoupon(t, repo, "SAVE10", nil)

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, created.ID)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "SAVE10", got.Code)
		assert.Equal(t, model.CouponTypePercentage, got.Type)
		assert.Equal(t, 0, got.UsedCount)
	})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		lower, err := repo.GetByCode(ctx, "save10")
		require.NoError(t, err)
		require.NotNil(t, lower)

		upper, err := repo.GetByCode(ctx, "SAVE10")
		require.NoError(t, err)
		require.NotNil(t, upper)

		assert.Equal(t, lower.ID, upper.ID)
	})

	t.Run("duplicate normalized code rejected", func(t *testing.T) {
		now := time.Now()
		dup := &model.Coupon{
			ID:         uuid.New(),
			Code:       model.NormalizeCode("Save10"), // differs only in case
			Type:       model.CouponTypeFixed,
			Value:      5,
			ValidFrom:  now.Add(-time.Hour),
			ValidUntil: now.Add(time.Hour),
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		err := repo.Create(ctx, dup)

		assert.ErrorIs(t, err, model.ErrDuplicateCode)
	})

	t.Run("update mutable fields", func(t *testing.T) {
		created.Value = 20
		created.IsActive = false
		created.UpdatedAt = time.Now()

		require.NoError(t, repo.Update(ctx, created))

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 20.0, got.Value)
		assert.False(t, got.IsActive)
	})

	t.Run("update unknown coupon", func(t *testing.T) {
		ghost := *created
		ghost.ID = uuid.New()
		ghost.Code = "GHOST1"

		err := repo.Update(ctx, &ghost)

		assert.ErrorIs(t, err, model.ErrCouponNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		victim := insertCoupon(t, repo, "SHORTLIVED", nil)

		require.NoError(t, repo.Delete(ctx, victim.ID))

		got, err := repo.GetByID(ctx, victim.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.ErrorIs(t, repo.Delete(ctx, victim.ID), model.ErrCouponNotFound)
	})
}

func TestCouponRepository_List(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	repo := repository.NewCouponRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	storeID := InsertStore(t, db.Pool, "Pizza Palace")

	now := time.Now()
	scoped := &model.Coupon{
		ID:         uuid.New(),
		Code:       "PIZZA20",
		Type:       model.CouponTypePercentage,
		Value:      20,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
		StoreID:    &storeID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.Create(ctx, scoped))

	expired := &model.Coupon{
		ID:         uuid.New(),
		Code:       "BYGONE5",
		Type:       model.CouponTypeFixed,
		Value:      5,
		ValidFrom:  now.Add(-48 * time.Hour),
		ValidUntil: now.Add(-24 * time.Hour),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.Create(ctx, expired))

	t.Run("all coupons", func(t *testing.T) {
		coupons, err := repo.List(ctx, repository.CouponFilter{Limit: 10})

		require.NoError(t, err)
		assert.Len(t, coupons, 2)
	})

	t.Run("active only excludes expired", func(t *testing.T) {
		coupons, err := repo.List(ctx, repository.CouponFilter{Limit: 10, ActiveOnly: true})

		require.NoError(t, err)
		require.Len(t, coupons, 1)
		assert.Equal(t, "PIZZA20", coupons[0].Code)
	})

	t.Run("by store", func(t *testing.T) {
		coupons, err := repo.List(ctx, repository.CouponFilter{Limit: 10, StoreID: &storeID})

		require.NoError(t, err)
		require.Len(t, coupons, 1)
		assert.Equal(t, "PIZZA20", coupons[0].Code)
	})
}

func TestRedemptionRepository_Redeem(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	couponRepo := repository.NewCouponRepository(db.Pool, zerolog.Nop())
	ledger := repository.NewRedemptionRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	t.Run("counter and ledger stay consistent", func(t *testing.T) {
		maxUses := 3
		c := insertCoupon(t, couponRepo, "TRIPLE", &maxUses)

		for i := 0; i < 3; i++ {
			record, err := ledger.Redeem(ctx, &model.RedeemCouponRequest{
				CouponID:        c.ID,
				UserID:          uuid.New(),
				OrderID:         uuid.New(),
				DiscountApplied: 2.50,
			})

			require.NoError(t, err)
			assert.Equal(t, c.ID, record.CouponID)
			assert.Equal(t, 2.50, record.DiscountApplied)
		}

		// Fourth attempt is over the cap.
		_, err := ledger.Redeem(ctx, &model.RedeemCouponRequest{
			CouponID: c.ID,
			UserID:   uuid.New(),
			OrderID:  uuid.New(),
		})
		assert.ErrorIs(t, err, model.ErrUsageExceeded)

		assert.Equal(t, 3, CouponUsedCount(t, db.Pool, c.ID))
		assert.Equal(t, 3, RedemptionCount(t, db.Pool, c.ID))
	})

	t.Run("unlimited coupon never exhausts", func(t *testing.T) {
		c := insertCoupon(t, couponRepo, "FOREVER", nil)

		for i := 0; i < 5; i++ {
			_, err := ledger.Redeem(ctx, &model.RedeemCouponRequest{
				CouponID: c.ID,
				UserID:   uuid.New(),
				OrderID:  uuid.New(),
			})
			require.NoError(t, err)
		}

		assert.Equal(t, 5, CouponUsedCount(t, db.Pool, c.ID))
	})

	t.Run("unknown coupon", func(t *testing.T) {
		_, err := ledger.Redeem(ctx, &model.RedeemCouponRequest{
			CouponID: uuid.New(),
			UserID:   uuid.New(),
			OrderID:  uuid.New(),
		})

		assert.ErrorIs(t, err, model.ErrCouponNotFound)
	})

	t.Run("history is paginated newest first", func(t *testing.T) {
		c := insertCoupon(t, couponRepo, "HISTORIC", nil)

		for i := 0; i < 4; i++ {
			_, err := ledger.Redeem(ctx, &model.RedeemCouponRequest{
				CouponID:        c.ID,
				UserID:          uuid.New(),
				OrderID:         uuid.New(),
				DiscountApplied: float64(i),
			})
			require.NoError(t, err)
		}

		page, err := ledger.ListByCoupon(ctx, c.ID, 3, 0)
		require.NoError(t, err)
		assert.Len(t, page, 3)

		rest, err := ledger.ListByCoupon(ctx, c.ID, 3, 3)
		require.NoError(t, err)
		assert.Len(t, rest, 1)

		for i := 1; i < len(page); i++ {
			assert.False(t, page[i].UsedAt.After(page[i-1].UsedAt))
		}
	})
}

// Two concurrent redemptions of a single-use coupon: exactly one wins.
func TestRedemptionRepository_ConcurrentSingleUse(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	couponRepo := repository.NewCouponRepository(db.Pool, zerolog.Nop())
	ledger := repository.NewRedemptionRepository(db.Pool, zerolog.Nop())

	maxUses := 1
	c := insertCoupon(t, couponRepo, "ONESHOT", &maxUses)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Redeem(context.Background(), &model.RedeemCouponRequest{
				CouponID:        c.ID,
				UserID:          uuid.New(),
				OrderID:         uuid.New(),
				DiscountApplied: 1,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, exceeded int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, model.ErrUsageExceeded)
			exceeded++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, exceeded)
	assert.Equal(t, 1, CouponUsedCount(t, db.Pool, c.ID))
	assert.Equal(t, 1, RedemptionCount(t, db.Pool, c.ID))
}

// The cap invariant under contention: M concurrent attempts against
// maxUses = N succeed exactly min(M, N) times.
func TestRedemptionRepository_ConcurrentCapInvariant(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	couponRepo := repository.NewCouponRepository(db.Pool, zerolog.Nop())
	ledger := repository.NewRedemptionRepository(db.Pool, zerolog.Nop())

	const attempts = 20
	maxUses := 5
	c := insertCoupon(t, couponRepo, "CONTESTED", &maxUses)

	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Redeem(context.Background(), &model.RedeemCouponRequest{
				CouponID:        c.ID,
				UserID:          uuid.New(),
				OrderID:         uuid.New(),
				DiscountApplied: 1,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, exceeded int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, model.ErrUsageExceeded)
			exceeded++
		}
	}

	assert.Equal(t, maxUses, succeeded)
	assert.Equal(t, attempts-maxUses, exceeded)

	// Counter and ledger agree after the dust settles.
	assert.Equal(t, maxUses, CouponUsedCount(t, db.Pool, c.ID))
	assert.Equal(t, maxUses, RedemptionCount(t, db.Pool, c.ID))
}
