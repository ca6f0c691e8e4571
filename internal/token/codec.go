// Package token signs and verifies the two JWT kinds used by the session
// protocol. Access and refresh tokens are signed with distinct secrets so
// a long-lived refresh token can never be replayed as an access token.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/technotes/notes-system/internal/core/domain"
)

// Kind selects which signing secret and TTL a token uses.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the payload carried by both token kinds. Roles are only set
// on access tokens; refresh tokens carry the username alone.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Config holds the signing material and validity windows. It is injected
// at construction; the codec never reads ambient state at call time.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Codec issues and verifies signed tokens.
type Codec struct {
	cfg Config
}

// NewCodec builds a Codec, applying default TTLs where none are given.
func NewCodec(cfg Config) *Codec {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Codec{cfg: cfg}
}

// AccessTTL returns the configured access-token validity window.
func (c *Codec) AccessTTL() time.Duration { return c.cfg.AccessTTL }

// RefreshTTL returns the configured refresh-token validity window.
func (c *Codec) RefreshTTL() time.Duration { return c.cfg.RefreshTTL }

// Issue signs a token of the given kind. Role claims are dropped from
// refresh tokens: refreshing always re-reads the current role set.
func (c *Codec) Issue(kind Kind, username string, roles []domain.Role) (string, error) {
	now := c.cfg.Now().UTC()

	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl(kind))),
		},
	}
	if kind == KindAccess {
		claims.Roles = domain.RoleNames(roles)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret(kind))
}

// Verify parses and validates a token of the given kind. Any failure
// (bad signature, wrong kind, malformed structure, expiry) yields
// domain.ErrInvalidToken. Expiry is strict; there is no grace window.
func (c *Codec) Verify(kind Kind, raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret(kind), nil
	}, jwt.WithTimeFunc(c.cfg.Now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid || claims.Username == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (c *Codec) ttl(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.cfg.RefreshTTL
	}
	return c.cfg.AccessTTL
}

func (c *Codec) secret(kind Kind) []byte {
	if kind == KindRefresh {
		return []byte(c.cfg.RefreshSecret)
	}
	return []byte(c.cfg.AccessSecret)
}
