package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInactive          = "INACTIVE"
	ErrCodeNotYetValid       = "NOT_YET_VALID"
	ErrCodeExpired           = "EXPIRED"
	ErrCodeStoreMismatch     = "STORE_MISMATCH"
	ErrCodeBelowMinimumOrder = "BELOW_MINIMUM_ORDER"
	ErrCodeUsageExceeded     = "USAGE_EXCEEDED"
	ErrCodeDuplicateCode     = "DUPLICATE_CODE"
	ErrCodeInvalidDateRange  = "INVALID_DATE_RANGE"
	ErrCodeStoreNotFound     = "STORE_NOT_FOUND"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable machine-readable code.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCouponNotFound    = NewDomainError(ErrCodeNotFound, "Coupon not found")
	ErrCouponInactive    = NewDomainError(ErrCodeInactive, "Coupon is not active")
	ErrCouponNotYetValid = NewDomainError(ErrCodeNotYetValid, "Coupon is not yet valid")
	ErrCouponExpired     = NewDomainError(ErrCodeExpired, "Coupon has expired")
	ErrStoreMismatch     = NewDomainError(ErrCodeStoreMismatch, "Coupon is not valid for this store")
	ErrBelowMinimumOrder = NewDomainError(ErrCodeBelowMinimumOrder, "Order value is below the coupon minimum")
	ErrUsageExceeded     = NewDomainError(ErrCodeUsageExceeded, "Coupon usage limit reached")
	ErrDuplicateCode     = NewDomainError(ErrCodeDuplicateCode, "A coupon with this code already exists")
	ErrInvalidDateRange  = NewDomainError(ErrCodeInvalidDateRange, "validFrom must be before validUntil")
	ErrStoreNotFound     = NewDomainError(ErrCodeStoreNotFound, "Referenced store does not exist")
)
