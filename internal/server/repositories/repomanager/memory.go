package repomanager

import (
	"context"
	"sync"

	"github.com/burakkoc5/falimatik/internal/server/repositories/users"
)

// MemoryRepositoryManager backs the server with in-process storage. InTx
// callbacks are serialized; there is no rollback, so a failing callback
// keeps the writes it already made.
type MemoryRepositoryManager struct {
	txMu  sync.Mutex
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) InTx(ctx context.Context, fn TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m.users)
}

func (m *MemoryRepositoryManager) Close() error { return nil }
