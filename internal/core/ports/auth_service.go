package ports

import "context"

// LoginResult carries the freshly minted token pair. The access token is
// returned in the response body; the refresh token is only ever written
// into the "jwt" cookie by the handler.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

// RefreshResult carries the replacement access token and the account it
// was issued to.
type RefreshResult struct {
	AccessToken string
	Username    string
}

// AuthService implements the login/refresh session protocol.
type AuthService interface {
	// Login verifies credentials and issues both tokens. Unknown user,
	// inactive account, and wrong password are indistinguishable:
	// all return domain.ErrUnauthorized.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// Refresh verifies a refresh token, re-fetches the account, and
	// issues a new access token carrying the account's current role set.
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
}
