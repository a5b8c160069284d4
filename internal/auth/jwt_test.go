package auth

import (
	"testing"
	"time"

	"zellalite/internal/config"
)

func testJWT() JWT {
	return New(config.AuthConfig{
		Secret:     "test-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
}

func TestSignVerify_RoundTrip(t *testing.T) {
	j := testJWT()
	token, err := j.SignAccess(42)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	userID, err := j.Verify(token, TokenAccess)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID=%d want=42", userID)
	}
}

func TestVerify_RejectsWrongTokenType(t *testing.T) {
	j := testJWT()
	token, err := j.SignRefresh(42)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := j.Verify(token, TokenAccess); err == nil {
		t.Fatalf("refresh token accepted as access token")
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	j := testJWT()
	token, err := j.SignAccess(42)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	other := New(config.AuthConfig{Secret: "other", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	if _, err := other.Verify(token, TokenAccess); err == nil {
		t.Fatalf("token verified with wrong secret")
	}
}
