package middleware

import (
	"context"
	"net/http"
	"strings"

	"mini-inventory/internal/auth"
	"mini-inventory/internal/model"

	"github.com/rs/zerolog"
)

// TokenParser verifies session tokens. *auth.TokenIssuer satisfies it.
type TokenParser interface {
	Parse(token string) (auth.Claims, error)
}

// RequireUser rejects requests without a valid bearer token and stores the
// token's user in the request context.
func RequireUser(tokens TokenParser, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := authenticate(w, r, tokens, logger)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin is RequireUser plus a check that the user has the ADMIN role.
func RequireAdmin(tokens TokenParser, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := authenticate(w, r, tokens, logger)
			if !ok {
				return
			}

			if !user.IsAdmin() {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("username", user.Username).
					Str("role", string(user.Role)).
					Msg("admin role required")
				writeError(w, http.StatusForbidden, model.ErrorResponse{
					Error:         model.ErrCodeForbidden,
					Message:       model.ErrForbidden.Message,
					CorrelationID: RequestIDFromContext(r.Context()),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func authenticate(w http.ResponseWriter, r *http.Request, tokens TokenParser, logger zerolog.Logger) (model.User, bool) {
	unauthorised := func(message string) {
		writeError(w, http.StatusUnauthorized, model.ErrorResponse{
			Error:         model.ErrCodeUnauthorised,
			Message:       message,
			CorrelationID: RequestIDFromContext(r.Context()),
		})
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		logger.Warn().Str("path", r.URL.Path).Msg("missing bearer token")
		unauthorised("unauthorised: missing bearer token")
		return model.User{}, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		logger.Warn().Str("path", r.URL.Path).Msg("malformed authorization header")
		unauthorised("unauthorised: expected 'Bearer <token>'")
		return model.User{}, false
	}

	claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid bearer token")
		unauthorised("unauthorised: invalid or expired token")
		return model.User{}, false
	}

	return claims.User(), true
}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
