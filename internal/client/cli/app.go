package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/logingate/internal/client/client"
	"github.com/dmitrijs2005/logingate/internal/client/config"
	"github.com/dmitrijs2005/logingate/internal/client/services"
	"github.com/dmitrijs2005/logingate/internal/filex"

	_ "modernc.org/sqlite"
)

// App is the interactive login form client. It owns the current session,
// the view the user is on, and the in-flight submission guard.
type App struct {
	config      *config.Config
	authService services.AuthService
	session     *client.Session
	email       string
	lastEmail   string
	location    string
	pending     bool
	reader      *bufio.Reader
	out         io.Writer
}

const loginLocation = "/login"

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	if _, err := filex.EnsureParentDir(c.LocalDBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerEndpointAddr)
	if err != nil {
		db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db, c.RememberDuration)

	return &App{
		config:      c,
		authService: as,
		location:    loginLocation,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// navigate moves the user to another view, like following a redirect.
func (a *App) navigate(target string) {
	a.location = target
}

func (a *App) getStatus() string {
	if a.email != "" {
		return fmt.Sprintf("(%s %s)", a.email, a.location)
	}
	return fmt.Sprintf("(%s)", a.location)
}
