package sqlite

// dbFileName is the query database rebuilt from JSONL on every attach.
const dbFileName = "payroll.db"

// jsonlExt is the extension of dataset files in the data directory.
const jsonlExt = ".jsonl"

// Records of every dataset share one table. position keeps insertion order
// within a dataset; payload is the record as a JSON object.
const (
	createRecords = `CREATE TABLE records (
    dataset TEXT NOT NULL,
    row_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    payload TEXT NOT NULL,
    PRIMARY KEY (dataset, row_id)
);`

	idxRecordsPosition = `CREATE INDEX idx_records_position ON records(dataset, position);`
)

var schemaDDL = []string{createRecords, idxRecordsPosition}

// Queries used by datasets.
const (
	qSelectOne = `SELECT payload FROM records WHERE dataset = ? AND row_id = ?`
	qSelectAll = `SELECT row_id, payload FROM records WHERE dataset = ? ORDER BY position`
	// qUpsert appends a new row or replaces the payload of an existing one,
	// keeping its position.
	qUpsert = `INSERT INTO records (dataset, row_id, position, payload)
    VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM records WHERE dataset = ?), ?)
    ON CONFLICT (dataset, row_id) DO UPDATE SET payload = excluded.payload`
	qDelete = `DELETE FROM records WHERE dataset = ? AND row_id = ?`
)
