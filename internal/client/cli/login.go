package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/logingate/internal/client/client"
	"github.com/dmitrijs2005/logingate/internal/common"
	"github.com/dmitrijs2005/logingate/internal/credentials"
)

// Login runs one pass of the login form: prompt, validate, submit, and
// either report the failure or navigate to the redirect target.
//
// While a submission is in flight the form refuses to start another one.
func (a *App) Login(ctx context.Context) error {
	if a.pending {
		fmt.Fprintln(a.out, "A submission is already in progress.")
		return nil
	}

	// a value entered on a failed attempt wins over the remembered one
	prefill := a.lastEmail
	if prefill == "" {
		prefill = a.authService.RememberedEmail(ctx)
	}

	email, err := GetTextWithDefault(a.reader, "Enter email", prefill, a.out)
	if err != nil {
		return err
	}
	a.lastEmail = email

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := GetConfirm(a.reader, "Remember me?", prefill != "", a.out)
	if err != nil {
		return err
	}

	in := credentials.Input{Email: email, Password: string(password), RememberMe: remember}

	// reject malformed input before it ever leaves the form
	if _, fieldErrs := credentials.Validate(in); fieldErrs != nil {
		a.printFieldErrors(fieldErrs)
		return nil
	}

	a.pending = true
	defer func() { a.pending = false }()

	fmt.Fprintln(a.out, "Signing in...")

	result, err := a.authService.Login(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrUnavailable):
			fmt.Fprintln(a.out, "Server unavailable. Please try again later.")
		case errors.Is(err, client.ErrTooManyRequests):
			fmt.Fprintln(a.out, "Too many attempts. Please wait a moment and try again.")
		default:
			fmt.Fprintf(a.out, "Login failed: %s\n", err.Error())
		}
		return err
	}

	fmt.Fprintln(a.out, result.Message)
	if !result.Success {
		return nil
	}

	a.session = result.Session
	a.email = in.Email
	a.lastEmail = ""
	fmt.Fprintf(a.out, "Redirecting to %s...\n", a.config.RedirectTarget)
	a.navigate(a.config.RedirectTarget)
	return nil
}

func (a *App) printFieldErrors(fieldErrs credentials.FieldErrors) {
	fmt.Fprintln(a.out, "Invalid form input. Please check your email and password.")
	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(a.out, "  %s: %s\n", field, fieldErrs[field])
	}
}

// Logout revokes the current session and returns the user to the login form.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx, a.session); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %s\n", err.Error())
		return err
	}
	a.session = nil
	a.email = ""
	a.navigate(loginLocation)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Forget clears the remembered sign-in state so the form starts blank.
func (a *App) Forget(ctx context.Context) error {
	if err := a.authService.Forget(ctx); err != nil {
		fmt.Fprintf(a.out, "Forget failed: %s\n", err.Error())
		return err
	}
	a.lastEmail = ""
	fmt.Fprintln(a.out, "Remembered sign-in forgotten.")
	return nil
}

// Whoami prints the signed-in account and token expiry.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "Signed in as %s, session valid until %s\n",
		a.email, a.session.ExpiresAt.Local().Format("15:04:05"))
	return nil
}

// resume tries to restore a session from the remembered refresh token.
// Silence on failure is deliberate: the user just sees the login form.
func (a *App) resume(ctx context.Context) {
	session, err := a.authService.ResumeSession(ctx)
	if err != nil {
		return
	}
	a.session = session
	a.email = a.authService.RememberedEmail(ctx)
	fmt.Fprintf(a.out, "Welcome back, %s!\n", a.email)
	a.navigate(a.config.RedirectTarget)
}
