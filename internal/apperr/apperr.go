package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks malformed form input, surfaced inline per field.
	ErrValidation = errors.New("validation failed")

	// ErrCollaborator marks a failed call to an external service (data,
	// payment or identity). The wrapped message is shown to the user verbatim.
	ErrCollaborator = errors.New("collaborator call failed")

	// Checkout preconditions. These redirect rather than render inline.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyCart        = errors.New("cart is empty")

	// ErrCartNotPersisted reports a cart snapshot write failure. The in-memory
	// cart stays valid; callers surface this as a warning, not a failure.
	ErrCartNotPersisted = errors.New("cart not persisted")

	ErrNotFound = errors.New("not found")
)

// Validation wraps a field-scoped input error.
func Validation(field, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, msg)
}

// Collaborator wraps an external service failure, keeping its message.
func Collaborator(service string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCollaborator, service, err)
}

func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrCollaborator):
		return "collaborator"
	case errors.Is(err, ErrNotAuthenticated):
		return "not_authenticated"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrCartNotPersisted):
		return "cart_not_persisted"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrCollaborator):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
