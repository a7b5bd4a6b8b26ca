package app

import (
	"context"
	"path/filepath"
	"testing"

	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/infrastructure/store/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRoundTripsThroughFileSource(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := sqlite.Create(ctx, filepath.Join(dir, "recipes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, err = store.Seed(ctx, sqlite.SampleData(), false)
	require.NoError(t, err)

	snapshot := filepath.Join(dir, "export", "catalog.json")
	require.NoError(t, export(ctx, store, snapshot))

	data, err := catalog.NewFileSource(snapshot).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Ingredients, 58)
	assert.Len(t, data.Recipes, 14)
	assert.Len(t, data.Substitutions, 7)
}

func TestRun(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "recipes.db")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--db", dbPath, "--reset", "--log-level", "error"})
	require.NoError(t, cmd.Execute())

	store, err := sqlite.Open(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	data, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Recipes, 14)
}
