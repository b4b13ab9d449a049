package jwt

import (
	"errors"
	"testing"
	"time"

	"entreprenapp/internal/entity"
)

func testUser() entity.User {
	return entity.User{
		Id:       "user-1",
		Email:    "alice@example.com",
		Username: "alice",
		Role:     entity.RoleEntrepreneur,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("access-secret-0123456789abcdefgh", "refresh-secret-0123456789abcdef", time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserId != "user-1" || claims.Username != "alice" || claims.Role != entity.RoleEntrepreneur {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestExpiredTokenReturnsSentinel(t *testing.T) {
	m := NewTokenManager("access-secret-0123456789abcdefgh", "refresh-secret-0123456789abcdef", -time.Minute, -time.Minute)

	token, err := m.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = m.ValidateAccessToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("err = %v, want ErrExpiredToken", err)
	}
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := NewTokenManager("access-secret-0123456789abcdefgh", "refresh-secret-0123456789abcdef", time.Minute, time.Hour)

	access, _ := m.GenerateAccessToken(testUser())
	refresh, _ := m.GenerateRefreshToken(testUser())

	if _, err := m.ValidateAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token validated as access: %v", err)
	}
	if _, err := m.ValidateRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token validated as refresh: %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	m := NewTokenManager("access-secret-0123456789abcdefgh", "refresh-secret-0123456789abcdef", time.Minute, time.Hour)

	token, _ := m.GenerateAccessToken(testUser())
	tampered := token[:len(token)-2] + "xx"

	if _, err := m.ValidateAccessToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered token accepted: %v", err)
	}

	if _, err := m.ValidateAccessToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("malformed token accepted: %v", err)
	}
}
