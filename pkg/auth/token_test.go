package auth

import (
	"testing"
	"time"

	"github.com/bellakids/storefront-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bellakids",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 1440,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Role: RoleAdmin, JTI: "session-1"})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("unexpected role %q", claims.Role)
	}
	if claims.ID != "session-1" {
		t.Fatalf("unexpected jti %q", claims.ID)
	}
}

func TestMintAccessTokenRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{Role: "shopper"}); err == nil {
		t.Fatal("expected error for non-admin role")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Role: RoleAdmin})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{Role: RoleAdmin})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to fail")
	}
}
