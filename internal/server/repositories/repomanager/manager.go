// Package repomanager wires the storage backends: it vends repositories,
// runs schema migrations and scopes work to a transaction.
package repomanager

import (
	"context"

	"github.com/burakkoc5/falimatik/internal/server/repositories/users"
)

// TxFunc receives a users repository bound to the running transaction.
type TxFunc func(ctx context.Context, users users.Repository) error

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	// InTx runs fn atomically. fn's error aborts the transaction and is
	// returned unchanged.
	InTx(ctx context.Context, fn TxFunc) error
	Close() error
}
