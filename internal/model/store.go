package model

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a marketplace store that coupons can be scoped to.
// The store subsystem proper lives elsewhere; the coupon engine only needs
// enough of it to resolve storeId references.
type Store struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
