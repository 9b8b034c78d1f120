package insights

import (
	"errors"
	"fmt"

	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/store"
)

// Sentinel errors returned by the insights service.
var (
	// ErrInvalidRange indicates a start date that is not before the end date.
	ErrInvalidRange = errors.New("start date must be before end date")

	// ErrRangeTooLarge indicates an analysis range longer than the configured maximum.
	ErrRangeTooLarge = errors.New("date range exceeds the maximum allowed")

	// ErrInvalidTimezone indicates an unknown IANA time zone name.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrUnknownStrategy indicates a strategy ID that is not in the catalog.
	ErrUnknownStrategy = errors.New("strategy not found")
)

// ServiceError wraps unexpected failures with the operation that caused them.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "log_emotion")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("insights service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("insights service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// passthrough lists the errors callers are expected to branch on; they are
// returned without a ServiceError wrapper.
var passthrough = []error{
	ErrInvalidRange,
	ErrRangeTooLarge,
	ErrInvalidTimezone,
	ErrUnknownStrategy,
	domain.ErrValidation,
	domain.ErrInvalidScope,
	domain.ErrInvalidCategory,
	domain.ErrInvalidComplexity,
	domain.ErrInvalidRating,
	store.ErrInvalidEntity,
	store.ErrDuplicate,
}

// NewServiceError wraps err for operation. Known sentinel errors and domain
// validation errors are returned as they are.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}
	for _, sentinel := range passthrough {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
