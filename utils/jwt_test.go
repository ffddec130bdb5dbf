package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("doc-1", "doc@example.com", "doctor")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	sub, kind, err := ExtractIdentityFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIdentityFromToken failed: %v", err)
	}
	if sub != "doc-1" || kind != "doctor" {
		t.Errorf("got sub=%q kind=%q", sub, kind)
	}
}

func TestExtractIdentity_RejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("doc-1", "doc@example.com", "doctor")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"

	if _, _, err := ExtractIdentityFromToken(tampered); err == nil {
		t.Error("expected a tampered token to be rejected")
	}
}

func TestExtractIdentity_RejectsWrongSigningMethod(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "doc-1",
		"kind": "doctor",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, _, err := ExtractIdentityFromToken(token); err == nil {
		t.Error("expected an unsigned token to be rejected")
	}
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	b := HashToken("token-b")
	if a == b {
		t.Error("different tokens must hash differently")
	}
	if a != HashToken("token-a") {
		t.Error("hash must be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("expected hex sha256 length 64, got %d", len(a))
	}
}
