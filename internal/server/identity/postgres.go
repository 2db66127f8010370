package identity

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/logingate/internal/common"
	"github.com/dmitrijs2005/logingate/internal/server/models"
	"github.com/dmitrijs2005/logingate/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a bcrypt hash of an unguessable value, compared against when
// the account does not exist so both branches cost one bcrypt verification.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Postgres verifies credentials against the users table, comparing the
// presented password with the stored bcrypt hash.
type Postgres struct {
	repo users.Repository
}

func NewPostgres(repo users.Repository) *Postgres {
	return &Postgres{repo: repo}
}

func (p *Postgres) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := p.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// HashPassword produces the bcrypt hash stored for new users.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
