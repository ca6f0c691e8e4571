package token

import (
	"testing"
	"time"

	"github.com/technotes/notes-system/internal/core/domain"
)

func testCodec(now time.Time) *Codec {
	return NewCodec(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Now:           func() time.Time { return now },
	})
}

func TestCodec_RoundTrip(t *testing.T) {
	c := testCodec(time.Now())

	raw, err := c.Issue(KindAccess, "alice", []domain.Role{domain.RoleEmployee, domain.RoleManager})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := c.Verify(KindAccess, raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("unexpected username: %s", claims.Username)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "Employee" || claims.Roles[1] != "Manager" {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
}

func TestCodec_RefreshCarriesNoRoles(t *testing.T) {
	c := testCodec(time.Now())

	raw, err := c.Issue(KindRefresh, "alice", []domain.Role{domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := c.Verify(KindRefresh, raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(claims.Roles) != 0 {
		t.Fatalf("refresh token must not carry roles, got %v", claims.Roles)
	}
}

func TestCodec_KindConfusionRejected(t *testing.T) {
	c := testCodec(time.Now())

	refresh, err := c.Issue(KindRefresh, "alice", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// A refresh token must not verify as an access token.
	if _, err := c.Verify(KindAccess, refresh); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-time.Hour)
	c := testCodec(issuedAt)

	raw, err := c.Issue(KindAccess, "alice", []domain.Role{domain.RoleEmployee})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Re-verify with a clock past the 15m window.
	late := NewCodec(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Now:           func() time.Time { return issuedAt.Add(16 * time.Minute) },
	})
	if _, err := late.Verify(KindAccess, raw); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCodec_Tampered(t *testing.T) {
	c := testCodec(time.Now())

	raw, err := c.Issue(KindAccess, "alice", []domain.Role{domain.RoleEmployee})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := raw[:len(raw)-2] + "xx"
	if _, err := c.Verify(KindAccess, tampered); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	if _, err := c.Verify(KindAccess, "not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}
