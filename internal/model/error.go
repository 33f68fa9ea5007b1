package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeInvalidID          = "INVALID_ID"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeReviewTooShort     = "REVIEW_TOO_SHORT"
	ErrCodeInvalidSort        = "INVALID_SORT"
	ErrCodeDuplicateReview    = "DUPLICATE_REVIEW"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeRestaurantNotFound = "RESTAURANT_NOT_FOUND"
	ErrCodeReviewNotFound     = "REVIEW_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
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
	ErrDuplicateReview    = NewDomainError(ErrCodeDuplicateReview, "You have already reviewed this restaurant.")
	ErrRestaurantNotFound = NewDomainError(ErrCodeRestaurantNotFound, "Restaurant not found.")
	ErrReviewNotFound     = NewDomainError(ErrCodeReviewNotFound, "Review not found.")
	ErrUserNotFound       = NewDomainError(ErrCodeUserNotFound, "User not found.")
	ErrInvalidRating      = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5 stars.")
	ErrReviewTooShort     = NewDomainError(ErrCodeReviewTooShort, "Review must be at least 20 characters.")
	ErrInvalidSort        = NewDomainError(ErrCodeInvalidSort, "Sort must be one of rating, reviews or name.")
	ErrEmailTaken         = NewDomainError(ErrCodeEmailTaken, "An account with this email already exists.")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid email or password.")
	ErrForbidden          = NewDomainError(ErrCodeForbidden, "You can only change your own reviews.")
	ErrUnauthorised       = NewDomainError(ErrCodeUnauthorised, "Authentication required.")
)

// NewValidationError creates a VALIDATION_FAILED error with a field-specific message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidationFailed, message)
}
