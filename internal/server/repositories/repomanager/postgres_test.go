package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/server/models"
	"github.com/burakkoc5/falimatik/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestManagers_ImplementInterface(t *testing.T) {
	db, _ := newDB(t)
	var _ RepositoryManager = NewPostgresRepositoryManager(db)
	var _ RepositoryManager = NewMemoryRepositoryManager()

	m := NewPostgresRepositoryManager(db)
	var _ users.Repository = m.Users()
	assert.IsType(t, &users.PostgresRepository{}, m.Users())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(ctx context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." || got != db {
			return errors.New("unexpected call")
		}
		return nil
	}

	require.NoError(t, NewPostgresRepositoryManager(db).RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	err := NewPostgresRepositoryManager(db).RunMigrations(context.Background())
	require.EqualError(t, err, "boom")
}

func TestPostgresInTx_CommitsAndRollsBack(t *testing.T) {
	db, mock := newDB(t)
	m := NewPostgresRepositoryManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := m.InTx(context.Background(), func(ctx context.Context, repo users.Repository) error {
		_, err := repo.Delete(ctx, "u-1")
		return err
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	boom := errors.New("boom")
	err = m.InTx(context.Background(), func(ctx context.Context, repo users.Repository) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryInTx_Serializes(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()
	require.NoError(t, m.RunMigrations(ctx))

	now := time.Now().UTC()
	_, err := m.Users().Create(ctx, &models.User{ID: "u-1", Email: "a@x.com", Username: "alice", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	// read-modify-write increments must not be lost
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.InTx(ctx, func(ctx context.Context, repo users.Repository) error {
				u, err := repo.GetByIDForUpdate(ctx, "u-1")
				if err != nil {
					return err
				}
				u.PasswordHash += "x"
				_, err = repo.Update(ctx, u)
				return err
			})
		}()
	}
	wg.Wait()

	u, err := m.Users().GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, u.PasswordHash, 20)

	err = m.InTx(ctx, func(ctx context.Context, repo users.Repository) error {
		_, err := repo.GetByID(ctx, "ghost")
		return err
	})
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, m.Close())
}
