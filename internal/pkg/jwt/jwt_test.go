package jwt_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rewear/rewear-api/internal/pkg/jwt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, true)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, claims.UserID)
	}
	if !claims.IsAdmin {
		t.Fatal("expected admin claim preserved")
	}
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)

	refresh, _, _, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(refresh); !errors.Is(err, jwt.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token on access path, got %v", err)
	}
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)

	access, err := svc.GenerateAccessToken(uuid.New(), false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateRefreshToken(access); !errors.Is(err, jwt.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access token on refresh path, got %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	svc := jwt.NewService("test-secret", -time.Minute, 7*24*time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, jwt.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestWrongSecret(t *testing.T) {
	signer := jwt.NewService("secret-a", 15*time.Minute, 7*24*time.Hour)
	verifier := jwt.NewService("secret-b", 15*time.Minute, 7*24*time.Hour)

	token, err := signer.GenerateAccessToken(uuid.New(), false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := verifier.ValidateAccessToken(token); !errors.Is(err, jwt.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)

	token, jti, expiresAt, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if jti == "" {
		t.Fatal("expected non-empty jti")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("expected future expiry")
	}
	if jwt.HashRefreshToken(token) != jwt.HashRefreshToken(token) {
		t.Fatal("expected deterministic hash")
	}
}
