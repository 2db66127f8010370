// Package identity abstracts the authoritative credential store behind a
// Provider seam so the login flow can run against a fixed tutorial account
// or a real user database without changing shape.
package identity

import (
	"context"

	"github.com/dmitrijs2005/logingate/internal/server/models"
)

// Provider verifies a presented email/password pair.
//
// Verify returns the matching account on success. Unknown accounts and wrong
// passwords are indistinguishable to callers: both yield
// common.ErrorUnauthorized, so no account-enumeration signal leaks through
// this boundary. Any other error means the provider itself failed.
type Provider interface {
	Verify(ctx context.Context, email, password string) (*models.User, error)
}
