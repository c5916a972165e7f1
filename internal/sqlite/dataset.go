package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// dataset implements types.Dataset over the records table.
type dataset struct {
	name string
	b    *Backend
}

func (d *dataset) Name() string { return d.name }

// Get returns the record stored under id.
func (d *dataset) Get(id string) (types.Record, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	d.b.mu.RLock()
	defer d.b.mu.RUnlock()

	if !d.b.attached {
		return nil, types.ErrStoreDetached
	}

	var payload string
	err := d.b.db.QueryRow(qSelectOne, d.name, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", d.name, id, err)
	}
	return decodePayload(payload)
}

// Set replaces the record stored under id, or appends rec when id is empty
// or unknown. An empty id is assigned a new UUID v7.
func (d *dataset) Set(id string, rec types.Record) (string, error) {
	if rec == nil {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = newRowID()
	} else if err := validateRowID(id); err != nil {
		return "", err
	}
	payload, err := encodePayload(rec)
	if err != nil {
		return "", err
	}

	d.b.mu.Lock()
	defer d.b.mu.Unlock()

	if !d.b.attached {
		return "", types.ErrStoreDetached
	}

	if _, err := d.b.db.Exec(qUpsert, d.name, id, d.name, payload); err != nil {
		return "", fmt.Errorf("set %s/%s: %w", d.name, id, err)
	}
	return id, d.b.written(d.name)
}

// Delete removes the row stored under id.
func (d *dataset) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	d.b.mu.Lock()
	defer d.b.mu.Unlock()

	if !d.b.attached {
		return types.ErrStoreDetached
	}

	res, err := d.b.db.Exec(qDelete, d.name, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", d.name, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s/%s: rows affected: %w", d.name, id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return d.b.written(d.name)
}

// Fetch returns every row in insertion order.
func (d *dataset) Fetch() ([]types.Row, error) {
	d.b.mu.RLock()
	defer d.b.mu.RUnlock()

	if !d.b.attached {
		return nil, types.ErrStoreDetached
	}
	return d.b.fetchLocked(d.name)
}

func (b *Backend) fetchLocked(name string) ([]types.Row, error) {
	rows, err := b.db.Query(qSelectAll, name)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer rows.Close()

	out := []types.Row{}
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, err)
		}
		rec, err := decodePayload(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, types.Row{ID: id, Record: rec})
	}
	return out, rows.Err()
}

// Records returns the records of rows, in order.
func Records(rows []types.Row) []types.Record {
	out := make([]types.Record, len(rows))
	for i, r := range rows {
		out[i] = r.Record
	}
	return out
}

func encodePayload(rec types.Record) (string, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return string(b), nil
}

func decodePayload(payload string) (types.Record, error) {
	var rec types.Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	if rec == nil {
		rec = types.Record{}
	}
	return rec, nil
}
