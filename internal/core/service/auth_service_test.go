package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/token"
)

func testTokenCodec() *token.Codec {
	return token.NewCodec(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.mustAddUser("alice", hashPassword(t, "correctpass"), []domain.Role{domain.RoleEmployee}, true)

	codec := testTokenCodec()
	svc := NewAuthService(repo, codec, zerolog.Nop())

	result, err := svc.Login(context.Background(), "alice", "correctpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", result)
	}

	claims, err := codec.Verify(token.KindAccess, result.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("unexpected username claim: %s", claims.Username)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "Employee" {
		t.Fatalf("role claims must equal the current role set, got %v", claims.Roles)
	}

	refreshClaims, err := codec.Verify(token.KindRefresh, result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token invalid: %v", err)
	}
	if len(refreshClaims.Roles) != 0 {
		t.Fatalf("refresh token must not carry roles")
	}
}

func TestAuthService_Login_FailuresIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	repo.mustAddUser("alice", hashPassword(t, "correctpass"), []domain.Role{domain.RoleEmployee}, true)
	repo.mustAddUser("mallory", hashPassword(t, "pass"), []domain.Role{domain.RoleEmployee}, false)

	svc := NewAuthService(repo, testTokenCodec(), zerolog.Nop())

	_, unknownErr := svc.Login(context.Background(), "ghost", "whatever")
	_, wrongPassErr := svc.Login(context.Background(), "alice", "wrongpass")
	_, inactiveErr := svc.Login(context.Background(), "mallory", "pass")

	for name, err := range map[string]error{
		"unknown user":     unknownErr,
		"wrong password":   wrongPassErr,
		"inactive account": inactiveErr,
	} {
		if err != domain.ErrUnauthorized {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

// The unknown-user path burns a comparison against dummyPasswordHash so
// a miss costs the same as a wrong password. The hash must stay a
// parseable bcrypt digest at the cost real accounts are stored with, or
// the comparison short-circuits and the timing difference returns.
func TestAuthService_Login_DummyHashMatchesStoredCost(t *testing.T) {
	cost, err := bcrypt.Cost(dummyPasswordHash)
	if err != nil {
		t.Fatalf("dummy hash is not a valid bcrypt digest: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("dummy hash cost %d, accounts are hashed at %d", cost, bcrypt.DefaultCost)
	}
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testTokenCodec(), zerolog.Nop())

	if _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrBadRequest {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice", ""); err != domain.ErrBadRequest {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestAuthService_Refresh_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.mustAddUser("alice", hashPassword(t, "pass"), []domain.Role{domain.RoleEmployee}, true)

	codec := testTokenCodec()
	svc := NewAuthService(repo, codec, zerolog.Nop())

	result, err := svc.Login(context.Background(), "alice", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.Username != "alice" {
		t.Fatalf("unexpected username: %s", refreshed.Username)
	}
	claims, err := codec.Verify(token.KindAccess, refreshed.AccessToken)
	if err != nil {
		t.Fatalf("refreshed token invalid: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("unexpected username claim: %s", claims.Username)
	}
}

func TestAuthService_Refresh_PicksUpRoleChanges(t *testing.T) {
	repo := newStubUserRepo()
	seeded := repo.mustAddUser("alice", hashPassword(t, "pass"), []domain.Role{domain.RoleEmployee}, true)

	codec := testTokenCodec()
	svc := NewAuthService(repo, codec, zerolog.Nop())

	result, err := svc.Login(context.Background(), "alice", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Promote alice after login; the old access token keeps its snapshot
	// but the next refresh must carry the current role set.
	seeded.Roles = []domain.Role{domain.RoleEmployee, domain.RoleManager}
	if _, err := repo.Update(context.Background(), seeded); err != nil {
		t.Fatalf("update user: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	claims, err := codec.Verify(token.KindAccess, refreshed.AccessToken)
	if err != nil {
		t.Fatalf("refreshed token invalid: %v", err)
	}
	if len(claims.Roles) != 2 || claims.Roles[1] != "Manager" {
		t.Fatalf("refresh must snapshot the current role set, got %v", claims.Roles)
	}
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testTokenCodec(), zerolog.Nop())

	if _, err := svc.Refresh(context.Background(), "garbage"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// An access token must not be accepted on the refresh path.
	codec := testTokenCodec()
	access, err := codec.Issue(token.KindAccess, "alice", []domain.Role{domain.RoleEmployee})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), access); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for kind confusion, got %v", err)
	}
}

func TestAuthService_Refresh_AccountGone(t *testing.T) {
	repo := newStubUserRepo()
	seeded := repo.mustAddUser("alice", hashPassword(t, "pass"), []domain.Role{domain.RoleEmployee}, true)

	svc := NewAuthService(repo, testTokenCodec(), zerolog.Nop())

	result, err := svc.Login(context.Background(), "alice", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := repo.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), result.RefreshToken); err != domain.ErrUnauthorized {
		t.Fatalf("deleted account must not refresh, got %v", err)
	}
}

func TestAuthService_Refresh_AccountDeactivated(t *testing.T) {
	repo := newStubUserRepo()
	seeded := repo.mustAddUser("alice", hashPassword(t, "pass"), []domain.Role{domain.RoleEmployee}, true)

	svc := NewAuthService(repo, testTokenCodec(), zerolog.Nop())

	result, err := svc.Login(context.Background(), "alice", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	seeded.Active = false
	if _, err := repo.Update(context.Background(), seeded); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), result.RefreshToken); err != domain.ErrUnauthorized {
		t.Fatalf("deactivated account must not refresh, got %v", err)
	}
}
