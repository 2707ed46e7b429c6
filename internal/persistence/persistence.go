// Package persistence wraps a storage.Engine with a file path, loading the
// engine from the path on construction and rewriting the whole snapshot to
// disk after every successful mutation.
package persistence

import (
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ampere207/hyper-vault/internal/apperr"
	"github.com/ampere207/hyper-vault/internal/schema"
	"github.com/ampere207/hyper-vault/internal/storage"
)

// Facade owns a storage.Engine and the file path it is persisted to. It is
// the type the executor holds a short-lived exclusive borrow of for the
// duration of a single statement.
type Facade struct {
	mu     sync.Mutex
	path   string
	engine *storage.Engine
	log    zerolog.Logger
}

// Open loads the engine from path. If the file does not exist, a fresh
// empty engine is used. If the file exists but fails to deserialize, the
// corrupt file is backed up next to the original path (suffixed with a
// fresh UUID) and a fresh empty engine is used in its place — the
// corruption is never silently swallowed; it is always logged at warn
// level with the backup path (§9 O2).
func Open(path string, log zerolog.Logger) (*Facade, error) {
	f := &Facade{path: path, log: log}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		f.engine = storage.New()
		return f, nil
	case err != nil:
		return nil, apperr.Wrap(apperr.CodeIO, "failed to read snapshot file", err)
	}

	engine, derr := storage.Deserialize(data)
	if derr != nil {
		backupPath := path + ".corrupt-" + uuid.NewString()
		if werr := os.WriteFile(backupPath, data, 0o644); werr != nil {
			log.Warn().Err(werr).Str("original", path).Msg("failed to back up corrupt snapshot")
		} else {
			log.Warn().Str("backup", backupPath).Err(derr).Msg("corrupt snapshot backed up; starting from an empty database")
		}
		f.engine = storage.New()
		return f, nil
	}

	f.engine = engine
	return f, nil
}

// Engine exposes the underlying storage engine for read-only operations
// (SELECT, stats). Mutating operations should go through the Facade's own
// Insert/Update/Delete/CreateTable methods so that every successful
// mutation is followed by a save().
func (f *Facade) Engine() *storage.Engine {
	return f.engine
}

func (f *Facade) save() {
	data, err := f.engine.Serialize()
	if err != nil {
		f.log.Warn().Err(err).Msg("failed to serialize snapshot")
		return
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		// The in-memory mutation is retained even though the file is now
		// out of sync with it; see §9 O5.
		f.log.Warn().Err(err).Str("path", f.path).Msg("failed to write snapshot after mutation; in-memory state is ahead of disk")
	}
}

// CreateTable delegates to the engine and saves on success.
func (f *Facade) CreateTable(name string, columns []string, primaryKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.engine.CreateTable(name, columns, primaryKey); err != nil {
		return err
	}
	f.save()
	return nil
}

// InsertRow delegates to the engine and saves on success.
func (f *Facade) InsertRow(table string, row schema.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.engine.InsertRow(table, row); err != nil {
		return err
	}
	f.save()
	return nil
}

// UpdateRows delegates to the engine and saves on success.
func (f *Facade) UpdateRows(table string, updates map[string]string, predicate storage.Predicate) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.engine.UpdateRows(table, updates, predicate)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		f.save()
	}
	return n, nil
}

// DeleteRows delegates to the engine and saves on success.
func (f *Facade) DeleteRows(table string, predicate storage.Predicate) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.engine.DeleteRows(table, predicate)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		f.save()
	}
	return n, nil
}
