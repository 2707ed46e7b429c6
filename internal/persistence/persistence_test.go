package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampere207/hyper-vault/internal/applog"
	"github.com/ampere207/hyper-vault/internal/schema"
	"github.com/ampere207/hyper-vault/internal/storage"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.db")
	f, err := Open(path, applog.NoOp())
	require.NoError(t, err)
	assert.Empty(t, f.Engine().TableNames())
}

func TestMutationsPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.db")
	f, err := Open(path, applog.NoOp())
	require.NoError(t, err)

	require.NoError(t, f.CreateTable("users", []string{"id", "name"}, "id"))
	require.NoError(t, f.InsertRow("users", schema.Row{"id": "1", "name": "Ann"}))

	reopened, err := Open(path, applog.NoOp())
	require.NoError(t, err)
	tbl, ok := reopened.Engine().Table("users")
	require.True(t, ok)
	assert.Equal(t, 1, tbl.RowCount())
}

func TestOpenCorruptSnapshotBacksUpAndStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.db")
	require.NoError(t, writeGarbage(path))

	f, err := Open(path, applog.NoOp())
	require.NoError(t, err)
	assert.Empty(t, f.Engine().TableNames())

	matches, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestUpdateAndDeleteGoThroughFacade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.db")
	f, err := Open(path, applog.NoOp())
	require.NoError(t, err)
	require.NoError(t, f.CreateTable("t", []string{"id"}, "id"))
	require.NoError(t, f.InsertRow("t", schema.Row{"id": "1"}))

	n, err := f.UpdateRows("t", map[string]string{"id": "1"}, storage.AlwaysTrue)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = f.DeleteRows("t", storage.AlwaysFalse)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func writeGarbage(path string) error {
	return os.WriteFile(path, []byte{0xDE, 0xAD, 0xBE, 0xEF}, 0o644)
}
