// Package services contains application services for the logingate client.
// The auth service drives the login form: submitting credentials, keeping
// the remembered sign-in state, and resuming a session from it.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/logingate/internal/client/client"
	"github.com/dmitrijs2005/logingate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/logingate/internal/common"
	"github.com/dmitrijs2005/logingate/internal/credentials"
	"github.com/dmitrijs2005/logingate/internal/dbx"
)

// Keys under which remembered sign-in state is stored locally. Only the
// email and a revocable refresh token are kept; the password never is.
const (
	keyRememberedEmail        = "remembered_email"
	keyRememberedRefreshToken = "remembered_refresh_token"
)

// AuthService defines the operations the login form needs.
//
// Contract:
//   - Login: submit credentials; on success with RememberMe set, persist
//     the remembered state, otherwise clear it.
//   - Register: create a new account on the server.
//   - RememberedEmail: the email to prefill, or "" when none is stored.
//   - ResumeSession: mint a session from the remembered refresh token.
//     Returns client.ErrLocalDataNotAvailable when nothing is remembered.
//   - Forget: clear all remembered state.
//   - Logout: revoke the session's refresh token and drop the remembered one.
//   - Ping: check server liveness.
//   - Close: release underlying resources.
type AuthService interface {
	Login(ctx context.Context, in credentials.Input) (*client.LoginResult, error)
	Register(ctx context.Context, in credentials.Input) error
	RememberedEmail(ctx context.Context) string
	ResumeSession(ctx context.Context) (*client.Session, error)
	Forget(ctx context.Context) error
	Logout(ctx context.Context, session *client.Session) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client      client.Client
	db          *sql.DB
	rememberFor time.Duration
}

// NewAuthService constructs an AuthService bound to the given API client
// and local database. rememberFor bounds how long a remembered refresh
// token is kept.
func NewAuthService(client client.Client, db *sql.DB, rememberFor time.Duration) AuthService {
	return &authService{client: client, db: db, rememberFor: rememberFor}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Login submits the form input and updates the remembered state according
// to the RememberMe choice. A rejected attempt is not an error; inspect
// LoginResult.Success.
func (a *authService) Login(ctx context.Context, in credentials.Input) (*client.LoginResult, error) {
	result, err := a.client.Login(ctx, in)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return result, nil
	}

	if in.RememberMe {
		if err := a.saveRemembered(ctx, in.Email, result.Session.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to save remembered state: %w", err)
		}
	} else {
		if err := a.clearRemembered(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear remembered state: %w", err)
		}
	}
	return result, nil
}

// saveRemembered persists the email and refresh token in one transaction.
func (a *authService) saveRemembered(ctx context.Context, email string, refreshToken string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Set(ctx, keyRememberedEmail, []byte(email), 0); err != nil {
			return err
		}
		return repo.Set(ctx, keyRememberedRefreshToken, []byte(refreshToken), a.rememberFor)
	})
}

func (a *authService) clearRemembered(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Delete(ctx, keyRememberedEmail); err != nil {
			return err
		}
		return repo.Delete(ctx, keyRememberedRefreshToken)
	})
}

func (a *authService) Register(ctx context.Context, in credentials.Input) error {
	return a.client.Register(ctx, in)
}

// RememberedEmail returns the email to prefill into the form, or "" when
// no remembered state exists.
func (a *authService) RememberedEmail(ctx context.Context) string {
	value, err := a.getMetadataRepo(a.db).Get(ctx, keyRememberedEmail)
	if err != nil {
		return ""
	}
	return string(value)
}

// ResumeSession exchanges the remembered refresh token for a fresh session.
// The rotated token replaces the stored one. A revoked or expired token
// clears the remembered token and yields client.ErrUnauthorized.
func (a *authService) ResumeSession(ctx context.Context) (*client.Session, error) {
	repo := a.getMetadataRepo(a.db)

	stored, err := repo.Get(ctx, keyRememberedRefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, client.ErrLocalDataNotAvailable
		}
		return nil, err
	}

	session, err := a.client.Refresh(ctx, string(stored))
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			if delErr := repo.Delete(ctx, keyRememberedRefreshToken); delErr != nil {
				return nil, delErr
			}
		}
		return nil, err
	}

	if err := repo.Set(ctx, keyRememberedRefreshToken, []byte(session.RefreshToken), a.rememberFor); err != nil {
		return nil, err
	}
	return session, nil
}

// Forget clears the remembered email and refresh token.
func (a *authService) Forget(ctx context.Context) error {
	return a.clearRemembered(ctx)
}

// Logout revokes the session server-side and drops the remembered refresh
// token. The remembered email is kept for the next prefill.
func (a *authService) Logout(ctx context.Context, session *client.Session) error {
	if session != nil {
		if err := a.client.Logout(ctx, session.RefreshToken); err != nil {
			return err
		}
	}
	return a.getMetadataRepo(a.db).Delete(ctx, keyRememberedRefreshToken)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	if err := a.client.Close(); err != nil {
		return err
	}
	return a.db.Close()
}
