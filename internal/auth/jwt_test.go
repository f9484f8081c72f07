package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"eats-backend/internal/models"
)

func TestJWT_SignVerify(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	token, err := j.Sign(42)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	id, err := j.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
}

func TestJWT_Verify_Rejects(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	token, err := j.Sign(7)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	cases := map[string]struct {
		issuer *JWT
		token  string
	}{
		"garbage":   {j, "not-a-token"},
		"other key": {NewJWT("other", time.Hour), token},
		"empty":     {j, ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := tc.issuer.Verify(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWT_Verify_Expired(t *testing.T) {
	j := NewJWT("secret", time.Minute)
	j.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := j.Sign(1)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	j.now = time.Now
	if _, err := j.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestUserContext(t *testing.T) {
	if _, ok := UserFromContext(context.Background()); ok {
		t.Fatal("empty context must not carry a user")
	}
	u := &models.User{Email: "a@b.c"}
	u.ID = 3
	got, ok := UserFromContext(WithUser(context.Background(), u))
	if !ok || got.ID != 3 {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
}
