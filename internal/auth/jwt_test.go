package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	got, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if got != userID {
		t.Errorf("got user %s, want %s", got, userID)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	got, err := m.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if got != userID {
		t.Errorf("got user %s, want %s", got, userID)
	}
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	access, _ := m.GenerateAccessToken(userID)
	refresh, _ := m.GenerateRefreshToken(userID)

	if _, err := m.ValidateAccessToken(refresh); !errors.Is(err, ErrWrongTokenUse) {
		t.Errorf("refresh token accepted as access token, err = %v", err)
	}
	if _, err := m.ValidateRefreshToken(access); !errors.Is(err, ErrWrongTokenUse) {
		t.Errorf("access token accepted as refresh token, err = %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token accepted, err = %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token signed with a different secret accepted, err = %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	if _, err := m.ValidateAccessToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token accepted, err = %v", err)
	}
}
