package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/logingate/internal/common"
	"github.com/dmitrijs2005/logingate/internal/credentials"
	"github.com/dmitrijs2005/logingate/internal/logging"
	"github.com/dmitrijs2005/logingate/internal/server/config"
	"github.com/dmitrijs2005/logingate/internal/server/identity"
	"github.com/dmitrijs2005/logingate/internal/server/models"
	"github.com/dmitrijs2005/logingate/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func newStaticAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	provider := identity.NewStatic(identity.DefaultStaticEmail, identity.DefaultStaticPassword)
	return NewAuthService(nil, repomanager.NewMemoryRepositoryManager(), provider, cfg, testLogger())
}

func TestAuthenticate_InvalidInput(t *testing.T) {
	s := newStaticAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   credentials.Input
	}{
		{"empty email", credentials.Input{Email: "", Password: "x"}},
		{"empty password", credentials.Input{Email: "a@b.com", Password: ""}},
		{"both empty", credentials.Input{}},
		{"malformed email", credentials.Input{Email: "not-an-email", Password: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Authenticate(ctx, tt.in)
			assert.False(t, got.Success)
			assert.Equal(t, MsgInvalidInput, got.Message)
		})
	}
}

func TestAuthenticate_Mismatch(t *testing.T) {
	s := newStaticAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   credentials.Input
	}{
		{"wrong password", credentials.Input{Email: "a@b.com", Password: "wrong"}},
		{"wrong email", credentials.Input{Email: "other@example.com", Password: "securePassword123"}},
		{"near miss case", credentials.Input{Email: "user@example.com", Password: "securepassword123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Authenticate(ctx, tt.in)
			assert.False(t, got.Success)
			// A syntactically valid pair must never see the validation message.
			assert.Equal(t, MsgMismatch, got.Message)
		})
	}
}

func TestAuthenticate_Success(t *testing.T) {
	s := newStaticAuthService(t)

	got := s.Authenticate(context.Background(), credentials.Input{
		Email:    "user@example.com",
		Password: "securePassword123",
	})
	assert.True(t, got.Success)
	assert.Equal(t, MsgSuccess, got.Message)
}

func TestAuthenticate_Idempotent(t *testing.T) {
	s := newStaticAuthService(t)
	ctx := context.Background()
	in := credentials.Input{Email: "user@example.com", Password: "securePassword123"}

	first := s.Authenticate(ctx, in)
	second := s.Authenticate(ctx, in)
	assert.Equal(t, first, second)

	// Authenticate must not mint anything: the freshly minted token count is
	// observable through Login, which is the only operation with side effects.
	_, session, err := s.Login(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, session)
}

type failingProvider struct{}

func (failingProvider) Verify(ctx context.Context, email, password string) (*models.User, error) {
	return nil, common.ErrorInternal
}

func TestLogin_ProviderOutage(t *testing.T) {
	cfg := &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour, RefreshTokenValidityDuration: time.Hour}
	s := NewAuthService(nil, repomanager.NewMemoryRepositoryManager(), failingProvider{}, cfg, testLogger())

	result, session, err := s.Login(context.Background(), credentials.Input{Email: "a@b.com", Password: "x"})
	assert.True(t, errors.Is(err, common.ErrorInternal))
	assert.False(t, result.Success)
	assert.Nil(t, session)
}

func TestLogin_MintsSession(t *testing.T) {
	s := newStaticAuthService(t)

	result, session, err := s.Login(context.Background(), credentials.Input{
		Email:    "user@example.com",
		Password: "securePassword123",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestLogin_FailureMintsNothing(t *testing.T) {
	s := newStaticAuthService(t)

	result, session, err := s.Login(context.Background(), credentials.Input{Email: "a@b.com", Password: "wrong"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Nil(t, session)
}

func TestRefreshToken_Rotates(t *testing.T) {
	s := newStaticAuthService(t)
	ctx := context.Background()

	_, session, err := s.Login(ctx, credentials.Input{Email: "user@example.com", Password: "securePassword123"})
	require.NoError(t, err)

	fresh, err := s.RefreshToken(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, fresh.RefreshToken)

	// The old token is gone after rotation.
	_, err = s.RefreshToken(ctx, session.RefreshToken)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized), "got %v", err)
}

func TestRefreshToken_Unknown(t *testing.T) {
	s := newStaticAuthService(t)

	_, err := s.RefreshToken(context.Background(), "never-issued")
	assert.True(t, errors.Is(err, common.ErrorUnauthorized), "got %v", err)
}

func TestRefreshToken_Expired(t *testing.T) {
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: -time.Minute,
	}
	provider := identity.NewStatic(identity.DefaultStaticEmail, identity.DefaultStaticPassword)
	s := NewAuthService(nil, repomanager.NewMemoryRepositoryManager(), provider, cfg, testLogger())

	_, session, err := s.Login(context.Background(), credentials.Input{Email: "user@example.com", Password: "securePassword123"})
	require.NoError(t, err)

	_, err = s.RefreshToken(context.Background(), session.RefreshToken)
	assert.True(t, errors.Is(err, common.ErrRefreshTokenExpired), "got %v", err)
}

func TestLogout_RevokesSession(t *testing.T) {
	s := newStaticAuthService(t)
	ctx := context.Background()

	_, session, err := s.Login(ctx, credentials.Input{Email: "user@example.com", Password: "securePassword123"})
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, session.RefreshToken))

	_, err = s.RefreshToken(ctx, session.RefreshToken)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized), "got %v", err)
}

func TestRegister_DisabledWithoutUserStore(t *testing.T) {
	s := newStaticAuthService(t)

	_, err := s.Register(context.Background(), credentials.Input{Email: "new@example.com", Password: "pw"})
	assert.True(t, errors.Is(err, common.ErrRegistrationDisabled), "got %v", err)
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	s := newStaticAuthService(t)

	_, err := s.Register(context.Background(), credentials.Input{Email: "nope", Password: ""})
	var fieldErrs credentials.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs, "email")
	assert.Contains(t, fieldErrs, "password")
}
