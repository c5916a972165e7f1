// Package sqlite implements types.Store with JSONL files as the source of
// truth and SQLite as the query engine. Each dataset is one <name>.jsonl
// file in the data directory; on attach every file is loaded into a fresh
// SQLite database, and writes are persisted back to JSONL according to the
// configured sync strategy.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// Backend implements types.Store.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	datasets map[string]*dataset

	// dirty holds datasets with writes not yet persisted under SyncOnClose.
	dirty map[string]bool
}

// NewBackend returns a detached backend.
func NewBackend() *Backend {
	return &Backend{
		datasets: make(map[string]*dataset),
		dirty:    make(map[string]bool),
	}
}

// Attach validates config, rebuilds the query database and loads every
// dataset file found in config.DataDir.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.dirty = make(map[string]bool)
	b.datasets = make(map[string]*dataset)

	names, err := discover(dataDir)
	if err != nil {
		db.Close()
		return err
	}
	for _, name := range names {
		if err := b.load(name); err != nil {
			db.Close()
			return fmt.Errorf("load %s: %w", name, err)
		}
		b.datasets[name] = &dataset{name: name, b: b}
	}
	b.attached = true

	if config.SyncStrategy() == types.SyncImmediate {
		if err := b.flushLocked(); err != nil {
			return err
		}
	}

	slog.Debug("store attached", "data_dir", dataDir, "datasets", len(names), "sync", config.SyncStrategy())
	return nil
}

// Detach persists pending writes and closes the query database. Detach is
// idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := b.flushLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}
	if err := b.db.Close(); err != nil {
		return err
	}

	b.db = nil
	b.attached = false
	b.datasets = make(map[string]*dataset)
	slog.Debug("store detached", "data_dir", b.dataDir)
	return nil
}

// Dataset returns the named dataset.
func (b *Backend) Dataset(name string) (types.Dataset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	ds, ok := b.datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrDatasetNotFound, name)
	}
	return ds, nil
}

// Names lists the attached datasets in sorted order.
func (b *Backend) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.datasets))
	for name := range b.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DataDir returns the directory the backend is attached to.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dataDir
}

// written records that dataset name changed. The caller holds b.mu for
// writing.
func (b *Backend) written(name string) error {
	if b.config.SyncStrategy() == types.SyncImmediate {
		return b.persistLocked(name)
	}
	b.dirty[name] = true
	return nil
}

func (b *Backend) flushLocked() error {
	names := make([]string, 0, len(b.dirty))
	for name := range b.dirty {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := b.persistLocked(name); err != nil {
			return err
		}
	}
	return nil
}

// persistLocked rewrites the JSONL file of dataset name from SQLite.
func (b *Backend) persistLocked(name string) error {
	rows, err := b.fetchLocked(name)
	if err != nil {
		return err
	}
	lines := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		line, err := encodeRow(r.ID, r.Record)
		if err != nil {
			return fmt.Errorf("encode %s row %s: %w", name, r.ID, err)
		}
		lines = append(lines, line)
	}
	if err := writeJSONL(datasetPath(b.dataDir, name), lines); err != nil {
		return fmt.Errorf("persist %s: %w", name, err)
	}
	delete(b.dirty, name)
	return nil
}

// discover returns the dataset names of the JSONL files in dataDir.
func discover(dataDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dataDir, "*"+jsonlExt))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), jsonlExt)
		if ValidName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ValidName reports whether name can be used as a dataset name: lowercase
// letters, digits and underscores, starting with a letter.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r == '_' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}
