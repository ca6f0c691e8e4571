package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/core/ports"
	"github.com/technotes/notes-system/internal/token"
)

// dummyPasswordHash is compared against on the unknown-user path so a
// login miss costs a full bcrypt verification either way; without it,
// response timing would reveal whether the username exists.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService implements the login/refresh session protocol.
type AuthService struct {
	users ports.UserRepository
	codec *token.Codec
	log   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *token.Codec, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, log: log}
}

// Login verifies the credentials and mints the token pair. Every failure
// mode collapses into domain.ErrUnauthorized so the response cannot be
// used to tell an unknown username from a wrong password or an inactive
// account.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrBadRequest
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	access, err := s.codec.Issue(token.KindAccess, user.Username, user.Roles)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Issue(token.KindRefresh, user.Username, nil)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")

	return &ports.LoginResult{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// account is re-fetched so that deleted or deactivated accounts cannot
// keep refreshing, and the new token snapshots the current role set;
// this is the sole point where role staleness is corrected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.RefreshResult, error) {
	claims, err := s.codec.Verify(token.KindRefresh, refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	access, err := s.codec.Issue(token.KindAccess, user.Username, user.Roles)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("username", user.Username).Msg("access token refreshed")

	return &ports.RefreshResult{AccessToken: access, Username: user.Username}, nil
}
