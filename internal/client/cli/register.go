package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/logingate/internal/client/client"
	"github.com/dmitrijs2005/logingate/internal/common"
	"github.com/dmitrijs2005/logingate/internal/credentials"
)

// Register prompts for a new account and creates it on the server.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	if !bytes.Equal(password, confirmation) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	in := credentials.Input{Email: email, Password: string(password)}

	if _, fieldErrs := credentials.Validate(in); fieldErrs != nil {
		a.printFieldErrors(fieldErrs)
		return nil
	}

	if err := a.authService.Register(ctx, in); err != nil {
		var fieldErrs credentials.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			a.printFieldErrors(fieldErrs)
		case errors.Is(err, client.ErrUnavailable):
			fmt.Fprintln(a.out, "Server unavailable. Please try again later.")
		default:
			fmt.Fprintf(a.out, "Registration failed: %s\n", err.Error())
		}
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can now log in.")
	return nil
}
