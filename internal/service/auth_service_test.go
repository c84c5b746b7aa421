package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, "Alex", "alex@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected registered user to have an id")
	}
	if user.PasswordHash == "correct-horse" {
		t.Fatal("password must not be stored in plain text")
	}

	if _, err := env.auth.Register(ctx, "Alex Again", "alex@example.com", "another"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected duplicate email rejection, got %v", err)
	}

	token, loggedIn, err := env.auth.Login(ctx, "alex@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected same user, got %s", loggedIn.ID)
	}

	// The token must carry the user id and verify against the secret.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(env.auth.GetJWTSecret()), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["uid"] != user.ID {
		t.Fatalf("expected uid claim %s, got %v", user.ID, claims["uid"])
	}

	if _, _, err := env.auth.Login(ctx, "alex@example.com", "wrong"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
	if _, _, err := env.auth.Login(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure for unknown email, got %v", err)
	}
}
