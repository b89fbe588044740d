package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aria-creative/vitrine/internal/model"
)

const (
	testEmail    = "admin@aria-creative.com"
	testPassword = "correct-horse-battery"
	testName     = "Administrateur"
)

func newTestAuth(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	identity := &model.AdminIdentity{
		Email:        testEmail,
		PasswordHash: string(hash),
		Name:         testName,
		Role:         model.RoleAdmin,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(identity, "test-secret-key-for-jwt", ttl, logger)
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	auth := newTestAuth(t, time.Hour)
	ctx := context.Background()

	token, user, err := auth.Login(ctx, testEmail, testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if user.Email != testEmail || user.Role != model.RoleAdmin || user.Name != testName {
		t.Errorf("user = %+v", user)
	}

	claims, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Email != testEmail || claims.Role != model.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	auth := newTestAuth(t, time.Hour)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", testEmail, "wrong-password"},
		{"wrong email", "someone@else.com", testPassword},
		{"both wrong", "someone@else.com", "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := auth.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	auth := newTestAuth(t, -time.Hour) // already expired at issuance
	ctx := context.Background()

	token, _, err := auth.Login(ctx, testEmail, testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := auth.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	auth := newTestAuth(t, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := auth.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyToken(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestVerifyTokenSignedWithOtherSecret(t *testing.T) {
	auth := newTestAuth(t, time.Hour)
	other := newTestAuth(t, time.Hour)
	other.jwtSecret = []byte("a-different-secret")

	token, _, err := other.Login(context.Background(), testEmail, testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := auth.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshExtendsExpiry(t *testing.T) {
	auth := newTestAuth(t, time.Hour)
	ctx := context.Background()

	token, _, err := auth.Login(ctx, testEmail, testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	refreshed, err := auth.Refresh(claims)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	newClaims, err := auth.VerifyToken(refreshed)
	if err != nil {
		t.Fatalf("VerifyToken refreshed: %v", err)
	}
	if newClaims.Email != claims.Email || newClaims.Name != claims.Name {
		t.Errorf("refreshed claims changed: %+v vs %+v", newClaims, claims)
	}
	if newClaims.ExpiresAt.Before(claims.ExpiresAt.Time) {
		t.Errorf("refreshed expiry %v precedes original %v", newClaims.ExpiresAt, claims.ExpiresAt)
	}
}
