package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eats-backend/internal/auth"
	"eats-backend/internal/models"
	"eats-backend/internal/storage"
)

type mockUsers struct {
	FindByIDFn func(ctx context.Context, id int) (*models.User, error)
}

func (m mockUsers) FindByID(ctx context.Context, id int) (*models.User, error) {
	return m.FindByIDFn(ctx, id)
}

// serve runs one request through the middleware and returns the user the
// inner handler saw.
func serve(t *testing.T, mw JWTAuthMiddleware, token string) (*models.User, int) {
	t.Helper()
	var seen *models.User
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	mw.Wrap(inner).ServeHTTP(rec, req)
	return seen, rec.Code
}

func TestJWTAuthMiddleware(t *testing.T) {
	issuer := auth.NewJWT("secret", time.Hour)
	good, err := issuer.Sign(5)
	if err != nil {
		t.Fatal(err)
	}
	orphan, err := issuer.Sign(6)
	if err != nil {
		t.Fatal(err)
	}

	mw := JWTAuthMiddleware{
		Tokens: issuer,
		Users: mockUsers{FindByIDFn: func(_ context.Context, id int) (*models.User, error) {
			if id != 5 {
				return nil, storage.ErrNotFound
			}
			u := &models.User{Email: "a@b.c", Role: models.RoleOwner}
			u.ID = id
			return u, nil
		}},
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	cases := []struct {
		name   string
		token  string
		wantID int
	}{
		{"no header", "", 0},
		{"garbage", "abc", 0},
		{"unknown user", orphan, 0},
		{"valid", good, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, code := serve(t, mw, tc.token)
			if code != http.StatusNoContent {
				t.Fatalf("request must pass through, got %d", code)
			}
			switch {
			case tc.wantID == 0 && user != nil:
				t.Fatalf("expected anonymous, got %+v", user)
			case tc.wantID != 0 && (user == nil || user.ID != tc.wantID):
				t.Fatalf("expected user %d, got %+v", tc.wantID, user)
			}
		})
	}
}

func TestJWTAuthMiddleware_LookupError(t *testing.T) {
	issuer := auth.NewJWT("secret", time.Hour)
	token, _ := issuer.Sign(1)
	mw := JWTAuthMiddleware{
		Tokens: issuer,
		Users: mockUsers{FindByIDFn: func(context.Context, int) (*models.User, error) {
			return nil, errors.New("db down")
		}},
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if user, _ := serve(t, mw, token); user != nil {
		t.Fatalf("expected anonymous, got %+v", user)
	}
}
