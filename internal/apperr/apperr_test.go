package apperr

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestKindAndStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err        error
		wantKind   string
		wantStatus int
	}{
		{nil, "", http.StatusOK},
		{Validation("email", "invalid"), "validation", http.StatusBadRequest},
		{Collaborator("payment", errors.New("502")), "collaborator", http.StatusBadGateway},
		{ErrNotAuthenticated, "not_authenticated", http.StatusUnauthorized},
		{ErrEmptyCart, "empty_cart", http.StatusConflict},
		{ErrNotFound, "not_found", http.StatusNotFound},
		{errors.New("anything else"), "internal", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.wantKind {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.wantKind)
		}
		if got := HTTPStatus(tt.err); got != tt.wantStatus {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.wantStatus)
		}
	}
}

func TestValidationCarriesField(t *testing.T) {
	t.Parallel()

	err := Validation("quantity", "must be at least 1")
	if !errors.Is(err, ErrValidation) {
		t.Fatal("not a validation error")
	}
	if !strings.Contains(err.Error(), "quantity") {
		t.Errorf("message lacks field: %q", err.Error())
	}
}
