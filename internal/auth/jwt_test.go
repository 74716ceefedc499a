package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewManager("", time.Hour)
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	token, err := m.NewToken("u1")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.Subject != "u1" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestTokenFromOtherProcessRejected(t *testing.T) {
	a, _ := NewManager("", time.Hour)
	b, _ := NewManager("", time.Hour)
	token, err := a.NewToken("u1")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	if _, err := b.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m, _ := NewManager("secret", time.Minute)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }
	token, err := m.NewToken("u1")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	m.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}
