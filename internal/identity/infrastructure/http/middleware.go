package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/essenza-labs/storefront/internal/identity/application"
	"github.com/essenza-labs/storefront/internal/identity/domain"
)

type contextKey struct{}

// WithSession returns a context carrying the given session, as Middleware
// would have produced it.
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// SessionFrom returns the session resolved by Middleware, or an
// unauthenticated session when the middleware did not run.
func SessionFrom(ctx context.Context) domain.Session {
	if s, ok := ctx.Value(contextKey{}).(domain.Session); ok {
		return s
	}
	return domain.Unauthenticated()
}

// Middleware resolves the Authorization bearer token once per request and
// stores the resulting session in the context for downstream handlers.
func Middleware(service *application.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
			session := service.Current(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}
