package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/nexus/pkg/auth"
	"github.com/shashiranjanraj/nexus/pkg/logger"
	"github.com/shashiranjanraj/nexus/pkg/response"
)

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type subjectKey struct{}

// Subject returns the token subject stored by Auth, or "".
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey{}).(string)
	return s
}

// Auth rejects requests without a valid "Authorization: Bearer" token with
// 401 and stores the token subject in the request context otherwise.
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				response.Unauthorized(w, "Not authenticated")
				return
			}

			claims, err := parser.Parse(token)
			if err != nil {
				logger.WithCtx(r.Context()).Debug("bearer token rejected", "error", err)
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				response.Unauthorized(w, "Could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
