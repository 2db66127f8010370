// Package services contains server-side business logic. This file implements
// AuthService, which validates login submissions, verifies them against the
// configured identity provider, and issues/refreshes JWTs plus server-stored
// refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/logingate/internal/common"
	"github.com/dmitrijs2005/logingate/internal/credentials"
	"github.com/dmitrijs2005/logingate/internal/dbx"
	"github.com/dmitrijs2005/logingate/internal/logging"
	"github.com/dmitrijs2005/logingate/internal/server/auth"
	"github.com/dmitrijs2005/logingate/internal/server/config"
	"github.com/dmitrijs2005/logingate/internal/server/identity"
	"github.com/dmitrijs2005/logingate/internal/server/models"
	"github.com/dmitrijs2005/logingate/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// User-facing result messages. The invalid-input message is deliberately
// generic: it never reveals which field was malformed, and the mismatch
// message never distinguishes an unknown account from a wrong password.
const (
	MsgInvalidInput = "Invalid form input. Please check your email and password."
	MsgMismatch     = "Incorrect email or password."
	MsgSuccess      = "Login successful."
)

// AuthResult is the outcome of an authentication attempt. Success is true if
// and only if schema validation passed and the identity provider accepted the
// pair; every failure kind is communicated here rather than via an error.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Session bundles the tokens minted after a successful login: a short-lived
// access JWT (with its expiry) and a long-lived, revocable refresh token.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthService provides authentication-related operations:
// - Authenticate: validate a submission and check it against the provider
// - Login: Authenticate plus minting a Session
// - Register: create users (only when a user store is configured)
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - Logout: revoke a refresh token
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	provider                     identity.Provider
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService. db may be nil when the repository
// manager is memory-backed (static provider deployment).
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, provider identity.Provider, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		provider:                     provider,
		logger:                       logger,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Authenticate runs schema validation and then checks the pair against the
// identity provider. It never returns an error for malformed input; all
// failure is communicated through the returned result. It has no side
// effects: no token is minted and nothing is written anywhere.
func (s *AuthService) Authenticate(ctx context.Context, in credentials.Input) AuthResult {
	result, _, _ := s.verify(ctx, in)
	return result
}

// Login authenticates the submission and, on success, mints a Session.
// The returned error is non-nil only for infrastructure failures (provider
// outage, token store down); credential problems surface in the AuthResult.
func (s *AuthService) Login(ctx context.Context, in credentials.Input) (AuthResult, *Session, error) {
	result, user, err := s.verify(ctx, in)
	if err != nil {
		return AuthResult{Success: false, Message: MsgMismatch}, nil, err
	}
	if !result.Success {
		return result, nil, nil
	}

	session, err := s.generateSession(ctx, user, s.db)
	if err != nil {
		return AuthResult{Success: false, Message: MsgMismatch}, nil, err
	}
	return result, session, nil
}

// verify is the shared validation+provider check. A nil error with
// result.Success=false means the input itself was rejected.
func (s *AuthService) verify(ctx context.Context, in credentials.Input) (AuthResult, *models.User, error) {
	creds, fieldErrs := credentials.Validate(in)
	if fieldErrs != nil {
		return AuthResult{Success: false, Message: MsgInvalidInput}, nil, nil
	}

	user, err := s.provider.Verify(ctx, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return AuthResult{Success: false, Message: MsgMismatch}, nil, nil
		}
		s.logger.Error(ctx, "identity provider failure", "error", err.Error())
		return AuthResult{Success: false, Message: MsgMismatch}, nil, common.ErrorInternal
	}

	return AuthResult{Success: true, Message: MsgSuccess}, user, nil
}

// Register creates a new user with a bcrypt hash of the given password.
// Input goes through the same schema validation as a login submission.
func (s *AuthService) Register(ctx context.Context, in credentials.Input) (*models.User, error) {
	creds, fieldErrs := credentials.Validate(in)
	if fieldErrs != nil {
		return nil, fieldErrs
	}

	repo := s.repomanager.Users(s.db)
	if repo == nil {
		return nil, common.ErrRegistrationDisabled
	}

	hash, err := identity.HashPassword(creds.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), Email: creds.Email, PasswordHash: hash}
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// RefreshToken validates a refresh token, rotates it, and returns a fresh
// Session. Expired tokens yield ErrRefreshTokenExpired; unknown tokens yield
// ErrorUnauthorized.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	user := &models.User{ID: token.UserID}

	// Rotation must be atomic when a real database backs the store.
	if s.db != nil {
		var session *Session
		if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repoTx := s.repomanager.RefreshTokens(tx)
			if err := repoTx.Delete(ctx, refreshToken); err != nil {
				return fmt.Errorf("error deleting refresh token: %w", err)
			}
			var genErr error
			session, genErr = s.generateSession(ctx, user, tx)
			return genErr
		}); err != nil {
			return nil, err
		}
		return session, nil
	}

	if err := repo.Delete(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error deleting refresh token: %w", err)
	}
	return s.generateSession(ctx, user, s.db)
}

// Logout revokes the given refresh token. Revoking an unknown token is not
// an error; the session is gone either way.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// --- helpers below ---

func (s *AuthService) generateAccessToken(user *models.User) (string, time.Time, error) {
	return auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *AuthService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *AuthService) generateSession(ctx context.Context, user *models.User, tx dbx.DBTX) (*Session, error) {
	access, expiresAt, err := s.generateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}
