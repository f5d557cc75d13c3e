package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/repository"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CouponHandler handles coupon-related HTTP requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// Create handles POST /api/coupons requests.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid request body", h.logger)
		return
	}

	c, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// Update handles PUT /api/coupons/{id} requests.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid request body", h.logger)
		return
	}

	c, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/coupons/{id} requests.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetByID handles GET /api/coupons/{id} requests.
func (h *CouponHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if c == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeNotFound, "coupon not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// GetByCode handles GET /api/coupons/code/{code} requests. Lookup is
// case-insensitive.
func (h *CouponHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "coupon code is required", h.logger)
		return
	}

	c, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if c == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeNotFound, "coupon not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// List handles GET /api/coupons requests. Supported query parameters:
// storeId, active, limit, offset.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.CouponFilter{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}

	if storeIDStr := r.URL.Query().Get("storeId"); storeIDStr != "" {
		storeID, err := uuid.Parse(storeIDStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid storeId format", h.logger)
			return
		}
		filter.StoreID = &storeID
	}

	if activeStr := r.URL.Query().Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid active flag", h.logger)
			return
		}
		filter.ActiveOnly = active
	}

	coupons, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if coupons == nil {
		coupons = []model.CouponResponse{}
	}

	writeJSON(w, http.StatusOK, coupons)
}

// Validate handles POST /api/coupons/validate requests. Always 200 for rule
// failures: checkout UIs read the structured result, not the status code.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req model.ValidateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Validate(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Redeem handles POST /api/coupons/redeem requests.
func (h *CouponHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req model.RedeemCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid request body", h.logger)
		return
	}

	record, err := h.service.Redeem(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// Redemptions handles GET /api/coupons/{id}/redemptions requests.
func (h *CouponHandler) Redemptions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	records, err := h.service.Redemptions(r.Context(), id, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if records == nil {
		records = []model.Redemption{}
	}

	writeJSON(w, http.StatusOK, records)
}

// pathID parses the {id} path segment; writes a 400 and returns false when
// it is missing or malformed.
func (h *CouponHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid coupon ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an integer query parameter, falling back on defaults for
// missing or malformed values.
func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
