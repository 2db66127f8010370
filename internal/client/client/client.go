package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/logingate/internal/credentials"
)

// Session is the token pair minted by the server on a successful login
// or refresh.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// LoginResult is the server's answer to a login attempt. Session is nil
// unless Success is true.
type LoginResult struct {
	Success bool
	Message string
	Session *Session
}

// Client defines the remote operations the CLI needs from the server.
//
// Login distinguishes a rejected attempt (Success=false, nil error) from
// a transport or server failure (non-nil error, typically ErrUnavailable).
type Client interface {
	Login(ctx context.Context, in credentials.Input) (*LoginResult, error)
	Register(ctx context.Context, in credentials.Input) error
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context, refreshToken string) error
	Ping(ctx context.Context) error
	Close() error
}
