package dto

import "time"

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeReferenceInvalid    = "REFERENCE_INVALID"
	CodeReferenceMismatch   = "REFERENCE_MISMATCH"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeInternal            = "INTERNAL"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

type HealthcheckResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// IDRequest is the body of operations addressed by a single id.
type IDRequest struct {
	ID uint `json:"id"`
}
