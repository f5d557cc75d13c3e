// Command seedcoupons populates the database with a demo store and a handful
// of sample coupon definitions for local development.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/config"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/coupon"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/database"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/repository"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := zerolog.Nop()
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	storeRepo := repository.NewStoreRepository(pool, logger)
	svc := service.NewCouponService(
		repository.NewCouponRepository(pool, logger),
		repository.NewRedemptionRepository(pool, logger),
		storeRepo,
		coupon.NewCalculator(cfg.Coupon.DeliveryFeeCredit),
		cfg.Coupon.MaxPageSize,
		logger,
	)

	store := &model.Store{
		ID:        uuid.New(),
		Name:      "Demo Kitchen",
		CreatedAt: time.Now(),
	}
	if err := storeRepo.Create(ctx, store); err != nil {
		log.Fatalf("Failed to create demo store: %v", err)
	}
	fmt.Printf("Created store %q (%s)\n", store.Name, store.ID)

	minOrder := 50.0
	maxUses := 100
	definitions := []*model.CreateCouponRequest{
		{
			Code:          "SAVE10",
			Type:          model.CouponTypePercentage,
			Value:         10,
			MinOrderValue: &minOrder,
			ValidFrom:     time.Now(),
			ValidUntil:    time.Now().AddDate(0, 1, 0),
		},
		{
			Code:       "FIVEOFF",
			Type:       model.CouponTypeFixed,
			Value:      5,
			MaxUses:    &maxUses,
			ValidFrom:  time.Now(),
			ValidUntil: time.Now().AddDate(0, 1, 0),
		},
		{
			Code:       "FREESHIP",
			Type:       model.CouponTypeFreeDelivery,
			Value:      1,
			ValidFrom:  time.Now(),
			ValidUntil: time.Now().AddDate(0, 0, 14),
			StoreID:    &store.ID,
		},
	}

	for _, def := range definitions {
		c, err := svc.Create(ctx, def)
		if err != nil {
			log.Fatalf("Failed to create coupon %s: %v", def.Code, err)
		}
		fmt.Printf("Created coupon %s (%s, value %.2f)\n", c.Code, c.Type, c.Value)
	}

	fmt.Println("\nSample coupons seeded successfully!")
}
