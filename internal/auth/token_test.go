package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Issue("user-123", "ana@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("expected userId 'user-123', got %q", claims.UserID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("expected email 'ana@example.com', got %q", claims.Email)
	}
}

func TestVerifyMissingToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	_, err := issuer.Verify("")
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestVerifyInvalidToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.e30"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := issuer.Verify(test.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-one")
	other := NewTokenIssuer("secret-two")

	token, err := issuer.Issue("user-123", "ana@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	issued := time.Now().Add(-31 * 24 * time.Hour)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue("user-123", "ana@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Back to real time: the 30-day window has passed.
	issuer.now = time.Now
	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenValidFor30Days(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	issued := time.Now()
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue("user-123", "ana@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Just inside the window.
	issuer.now = func() time.Time { return issued.Add(30*24*time.Hour - time.Minute) }
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("expected token valid just before expiry, got %v", err)
	}

	// Just outside the window.
	issuer.now = func() time.Time { return issued.Add(30*24*time.Hour + time.Minute) }
	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken just after expiry, got %v", err)
	}
}
