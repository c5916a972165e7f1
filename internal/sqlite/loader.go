package sqlite

import (
	"fmt"
	"log/slog"
)

// load inserts the rows of dataset name into SQLite in file order. Lines
// that do not decode, or repeat a row ID, are skipped. Lines without a row
// ID are assigned one and the dataset is marked dirty so the IDs reach the
// file. The caller holds b.mu for writing.
func (b *Backend) load(name string) error {
	lines, err := readJSONL(datasetPath(b.dataDir, name))
	if err != nil {
		return err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO records (dataset, row_id, position, payload) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare load: %w", err)
	}
	defer stmt.Close()

	loaded, skipped := 0, 0
	for n, line := range lines {
		row, err := decodeRow(line)
		if err != nil {
			slog.Warn("skipping row", "dataset", name, "line", n+1, "error", err)
			skipped++
			continue
		}
		if row.RowID == "" {
			row.RowID = newRowID()
			b.dirty[name] = true
		}
		payload, err := encodePayload(row.Record)
		if err != nil {
			skipped++
			continue
		}
		if _, err := stmt.Exec(name, row.RowID, loaded, payload); err != nil {
			slog.Warn("skipping row", "dataset", name, "line", n+1, "error", err)
			skipped++
			continue
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	slog.Debug("dataset loaded", "dataset", name, "rows", loaded, "skipped", skipped)
	return nil
}
