package identity

import (
	"context"
	"crypto/subtle"

	"github.com/dmitrijs2005/logingate/internal/common"
	"github.com/dmitrijs2005/logingate/internal/server/models"
)

// DefaultStaticEmail and DefaultStaticPassword are the tutorial account.
// They exist for demos and tests; production deployments configure the
// postgres provider instead.
const (
	DefaultStaticEmail    = "user@example.com"
	DefaultStaticPassword = "securePassword123"
)

// Static verifies against a single configured account held in memory.
// It is pure: Verify has no side effects and is idempotent.
type Static struct {
	email    []byte
	password []byte
	user     models.User
}

func NewStatic(email, password string) *Static {
	return &Static{
		email:    []byte(email),
		password: []byte(password),
		user:     models.User{ID: "00000000-0000-0000-0000-000000000001", Email: email},
	}
}

// Verify compares both fields in constant time. Comparing the email the same
// way keeps the code path identical for unknown accounts and wrong passwords.
func (s *Static) Verify(ctx context.Context, email, password string) (*models.User, error) {
	emailOK := subtle.ConstantTimeCompare(s.email, []byte(email)) == 1
	passwordOK := subtle.ConstantTimeCompare(s.password, []byte(password)) == 1
	if !emailOK || !passwordOK {
		return nil, common.ErrorUnauthorized
	}
	u := s.user
	return &u, nil
}
