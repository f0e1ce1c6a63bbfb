package service

import (
	"testing"
	"time"

	"github.com/saaprojects/setlist/internal/core/domain"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 24*time.Hour)

	token, err := svc.IssueAccess("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.TokenID == "" {
		t.Fatalf("expected a token id")
	}
	if remaining := time.Until(claims.ExpiresAt); remaining < 55*time.Minute || remaining > time.Hour {
		t.Fatalf("unexpected expiry, %s remaining", remaining)
	}
}

func TestTokenService_UniqueTokenIDs(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 24*time.Hour)

	first, err := svc.IssueAccess("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	second, err := svc.IssueAccess("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	a, _ := svc.Verify(first)
	b, _ := svc.Verify(second)
	if a == nil || b == nil || a.TokenID == b.TokenID {
		t.Fatalf("expected distinct token ids, got %+v and %+v", a, b)
	}
}

func TestTokenService_RefreshOutlivesAccess(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 24*time.Hour)

	access, err := svc.IssueAccess("alice")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := svc.IssueRefresh("alice")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	ac, err := svc.Verify(access)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	rc, err := svc.Verify(refresh)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if !rc.ExpiresAt.After(ac.ExpiresAt) {
		t.Fatalf("refresh token must expire after the access token")
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Millisecond, 24*time.Hour)

	token, err := svc.IssueAccess("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := svc.Verify(token); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour, 24*time.Hour)
	verifier := NewTokenService("secret-b", time.Hour, 24*time.Hour)

	token, err := issuer.IssueAccess("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 24*time.Hour)

	token, err := svc.IssueAccess("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.Verify(tampered); err == nil {
		t.Fatalf("tampered token verified")
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 24*time.Hour)

	for _, raw := range []string{"", "garbage", "a.b"} {
		if _, err := svc.Verify(raw); err != domain.ErrTokenMalformed {
			t.Fatalf("input %q: expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}
