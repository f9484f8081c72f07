package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"eats-backend/internal/auth"
	"eats-backend/internal/models"
)

// TokenHeader carries the session token issued by the login mutation.
const TokenHeader = "x-jwt"

type TokenVerifier interface {
	Verify(token string) (int, error)
}

type UserLoader interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
}

// JWTAuthMiddleware resolves the caller from the x-jwt header. Requests
// without a usable token pass through anonymously; resolvers decide what
// an anonymous caller may do.
type JWTAuthMiddleware struct {
	Tokens TokenVerifier
	Users  UserLoader
	Log    *slog.Logger
}

func (m JWTAuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := m.Tokens.Verify(token)
		if err != nil {
			m.Log.DebugContext(r.Context(), "rejected token", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.Users.FindByID(r.Context(), id)
		if err != nil {
			m.Log.WarnContext(r.Context(), "token user lookup failed", "user_id", id, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
