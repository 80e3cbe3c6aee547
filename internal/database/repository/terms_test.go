package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/glossview/internal/database"
)

func newRepo(t *testing.T) *TermRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	require.NoError(t, database.RunMigrations(dbPath), "second run is a no-op")

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTermRepo(db)
}

func TestTermCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	api, err := repo.Create(ctx, Term{Name: "API", Description: "application programming interface"})
	require.NoError(t, err)
	require.NotZero(t, api.ID)
	db, err := repo.Create(ctx, Term{Name: "DB", Description: "database"})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []Term{api, db}, list)

	got, err := repo.Get(ctx, db.ID)
	require.NoError(t, err)
	require.Equal(t, &db, got)

	db.Description = "storage"
	require.NoError(t, repo.Update(ctx, db))
	got, err = repo.ByName(ctx, "DB")
	require.NoError(t, err)
	require.Equal(t, "storage", got.Description)

	require.NoError(t, repo.Delete(ctx, api.ID))
	got, err = repo.Get(ctx, api.ID)
	require.NoError(t, err)
	require.Nil(t, got)
	require.ErrorIs(t, repo.Delete(ctx, api.ID), ErrNotFound)
}

func TestTermDuplicateName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	first, err := repo.Create(ctx, Term{Name: "Node", Description: "a vertex"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, Term{Name: "Node", Description: "again"})
	require.ErrorIs(t, err, ErrDuplicate)

	other, err := repo.Create(ctx, Term{Name: "Edge", Description: "a link"})
	require.NoError(t, err)
	other.Name = first.Name
	require.ErrorIs(t, repo.Update(ctx, other), ErrDuplicate)
}

func TestTermMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
	require.ErrorIs(t, repo.Update(ctx, Term{ID: 42, Name: "x"}), ErrNotFound)
	got, err := repo.ByName(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}
