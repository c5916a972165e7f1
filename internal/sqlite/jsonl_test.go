package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	lines := []json.RawMessage{
		json.RawMessage(`{"a":1}`),
		json.RawMessage(`{"b":"two"}`),
	}
	require.NoError(t, writeJSONL(path, lines))

	got, err := readJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, lines, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteJSONLEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, writeJSONL(path, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestReadJSONLMissing(t *testing.T) {
	_, err := readJSONL(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeRow(t *testing.T) {
	id := newRowID()

	r, err := decodeRow(json.RawMessage(`{"row_id":"` + id + `","record":{"x":1}}`))
	require.NoError(t, err)
	assert.Equal(t, id, r.RowID)
	assert.Equal(t, "1", r.Record.Get("x").String())

	r, err = decodeRow(json.RawMessage(`{"x":"bare"}`))
	require.NoError(t, err)
	assert.Empty(t, r.RowID)
	assert.Equal(t, "bare", r.Record.Get("x").String())

	_, err = decodeRow(json.RawMessage(`null`))
	assert.Error(t, err)
}
