package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/logingate/internal/dbx"
	"github.com/dmitrijs2005/logingate/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/logingate/internal/server/repositories/users"
)

// MemoryRepositoryManager backs the static-provider deployment, where no
// database exists: sessions live in process memory and there is no user
// store, so Users returns nil and registration is unavailable.
type MemoryRepositoryManager struct {
	sessions *refreshtokens.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{sessions: refreshtokens.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return nil
}

func (m *MemoryRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return m.sessions
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
