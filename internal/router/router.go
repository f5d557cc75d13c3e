package router

import (
	"net/http"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/handler"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(couponHandler *handler.CouponHandler, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Checkout-facing endpoints
	mux.HandleFunc("POST /api/coupons/validate", couponHandler.Validate)
	mux.HandleFunc("POST /api/coupons/redeem", couponHandler.Redeem)

	// Administrative CRUD surface
	mux.HandleFunc("POST /api/coupons", couponHandler.Create)
	mux.HandleFunc("GET /api/coupons", couponHandler.List)
	mux.HandleFunc("GET /api/coupons/{id}", couponHandler.GetByID)
	mux.HandleFunc("PUT /api/coupons/{id}", couponHandler.Update)
	mux.HandleFunc("DELETE /api/coupons/{id}", couponHandler.Delete)
	mux.HandleFunc("GET /api/coupons/code/{code}", couponHandler.GetByCode)
	mux.HandleFunc("GET /api/coupons/{id}/redemptions", couponHandler.Redemptions)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
