package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/logingate/internal/client/client"
	"github.com/dmitrijs2005/logingate/internal/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type fakeClient struct {
	loginResult  *client.LoginResult
	loginErr     error
	refreshed    *client.Session
	refreshErr   error
	loggedOut    []string
	registerErr  error
	lastRefresh  string
	loginCalls   int
	refreshCalls int
}

func (f *fakeClient) Login(ctx context.Context, in credentials.Input) (*client.LoginResult, error) {
	f.loginCalls++
	return f.loginResult, f.loginErr
}

func (f *fakeClient) Register(ctx context.Context, in credentials.Input) error {
	return f.registerErr
}

func (f *fakeClient) Refresh(ctx context.Context, refreshToken string) (*client.Session, error) {
	f.refreshCalls++
	f.lastRefresh = refreshToken
	return f.refreshed, f.refreshErr
}

func (f *fakeClient) Logout(ctx context.Context, refreshToken string) error {
	f.loggedOut = append(f.loggedOut, refreshToken)
	return nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }
func (f *fakeClient) Close() error                   { return nil }

func newTestService(t *testing.T, c client.Client) (AuthService, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthService(c, db, time.Hour), db
}

func successResult(token string) *client.LoginResult {
	return &client.LoginResult{
		Success: true,
		Message: "Login successful.",
		Session: &client.Session{
			AccessToken:  "jwt",
			RefreshToken: token,
			ExpiresAt:    time.Now().Add(15 * time.Minute),
		},
	}
}

func TestAuthService_LoginRemember(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginResult: successResult("refresh-1")}
	svc, _ := newTestService(t, fc)

	result, err := svc.Login(ctx, credentials.Input{
		Email: "user@example.com", Password: "securePassword123", RememberMe: true,
	})
	require.NoError(t, err)
	assert.True(t, result.Success)

	assert.Equal(t, "user@example.com", svc.RememberedEmail(ctx))
}

func TestAuthService_LoginWithoutRememberClearsState(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginResult: successResult("refresh-1")}
	svc, _ := newTestService(t, fc)

	_, err := svc.Login(ctx, credentials.Input{
		Email: "user@example.com", Password: "securePassword123", RememberMe: true,
	})
	require.NoError(t, err)

	fc.loginResult = successResult("refresh-2")
	_, err = svc.Login(ctx, credentials.Input{
		Email: "user@example.com", Password: "securePassword123", RememberMe: false,
	})
	require.NoError(t, err)

	assert.Equal(t, "", svc.RememberedEmail(ctx))
	_, err = svc.ResumeSession(ctx)
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestAuthService_RejectedLoginLeavesStateAlone(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginResult: successResult("refresh-1")}
	svc, _ := newTestService(t, fc)

	_, err := svc.Login(ctx, credentials.Input{
		Email: "user@example.com", Password: "securePassword123", RememberMe: true,
	})
	require.NoError(t, err)

	fc.loginResult = &client.LoginResult{Success: false, Message: "Incorrect email or password."}
	result, err := svc.Login(ctx, credentials.Input{
		Email: "user@example.com", Password: "wrong", RememberMe: false,
	})
	require.NoError(t, err)
	assert.False(t, result.Success)

	// a failed attempt must not forget the previous remembered state
	assert.Equal(t, "user@example.com", svc.RememberedEmail(ctx))
}

func TestAuthService_LoginServerDown(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginErr: client.ErrUnavailable}
	svc, _ := newTestService(t, fc)

	_, err := svc.Login(ctx, credentials.Input{Email: "a@b.com", Password: "x"})
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestAuthService_ResumeSessionRotatesToken(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginResult: successResult("refresh-1")}
	svc, _ := newTestService(t, fc)

	_, err := svc.Login(ctx, credentials.Input{
		Email: "user@example.com", Password: "securePassword123", RememberMe: true,
	})
	require.NoError(t, err)

	fc.refreshed = &client.Session{AccessToken: "jwt-2", RefreshToken: "refresh-2", ExpiresAt: time.Now().Add(15 * time.Minute)}
	session, err := svc.ResumeSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", fc.lastRefresh)
	assert.Equal(t, "jwt-2", session.AccessToken)

	// the rotated token must be the one stored now
	fc.refreshed = &client.Session{AccessToken: "jwt-3", RefreshToken: "refresh-3", ExpiresAt: time.Now().Add(15 * time.Minute)}
	_, err = svc.ResumeSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", fc.lastRefresh)
}

func TestAuthService_ResumeSessionRevoked(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginResult: successResult("refresh-1")}
	svc, _ := newTestService(t, fc)

	_, err := svc.Login(ctx, credentials.Input{
		Email: "user@example.com", Password: "securePassword123", RememberMe: true,
	})
	require.NoError(t, err)

	fc.refreshErr = client.ErrUnauthorized
	_, err = svc.ResumeSession(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	// the dead token is dropped so the next resume does not retry it
	fc.refreshErr = nil
	_, err = svc.ResumeSession(ctx)
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestAuthService_LogoutKeepsEmail(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginResult: successResult("refresh-1")}
	svc, _ := newTestService(t, fc)

	result, err := svc.Login(ctx, credentials.Input{
		Email: "user@example.com", Password: "securePassword123", RememberMe: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.Session))
	assert.Equal(t, []string{"refresh-1"}, fc.loggedOut)

	// email stays for the next prefill, the token does not
	assert.Equal(t, "user@example.com", svc.RememberedEmail(ctx))
	_, err = svc.ResumeSession(ctx)
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestAuthService_Forget(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginResult: successResult("refresh-1")}
	svc, _ := newTestService(t, fc)

	_, err := svc.Login(ctx, credentials.Input{
		Email: "user@example.com", Password: "securePassword123", RememberMe: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Forget(ctx))

	assert.Equal(t, "", svc.RememberedEmail(ctx))
	_, err = svc.ResumeSession(ctx)
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestAuthService_RegisterPassthrough(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("boom")
	fc := &fakeClient{registerErr: wantErr}
	svc, _ := newTestService(t, fc)

	err := svc.Register(ctx, credentials.Input{Email: "a@b.com", Password: "password1"})
	assert.ErrorIs(t, err, wantErr)
}
