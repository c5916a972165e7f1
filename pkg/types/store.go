package types

import "errors"

// Row pairs a stored record with the identifier the store assigned to it.
// Row IDs belong to the store and are never written into the record.
type Row struct {
	ID     string `json:"id"`
	Record Record `json:"record"`
}

// Dataset provides uniform CRUD operations over one named record collection.
type Dataset interface {
	// Name returns the dataset name (e.g. "employees").
	Name() string

	// Get retrieves the record with the given row ID.
	// Returns ErrNotFound if no row exists with that ID.
	Get(id string) (Record, error)

	// Set creates or replaces a record. When id is empty a new UUID v7 is
	// generated and the record is appended. Returns the row ID used.
	Set(id string, rec Record) (string, error)

	// Delete removes the row with the given ID.
	// Returns ErrNotFound if no row exists with that ID.
	Delete(id string) error

	// Fetch returns every row in insertion order.
	Fetch() ([]Row, error)
}

// Store gives access to named datasets held by a backend.
type Store interface {
	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Dataset returns the dataset with the given name.
	// Returns ErrDatasetNotFound if no such dataset exists.
	Dataset(name string) (Dataset, error)

	// Names lists the dataset names in sorted order.
	Names() []string
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrDatasetNotFound = errors.New("dataset not found")
)

// Dataset operation errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrInvalidData = errors.New("invalid record data")
	ErrInvalidName = errors.New("invalid dataset name")
)

// Table engine and schema errors.
var (
	ErrInvalidViewMode   = errors.New("invalid view mode")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrActionUnavailable = errors.New("action not available")
	ErrSchemaNotFound    = errors.New("schema not found")
	ErrUnknownFormat     = errors.New("unknown format")
	ErrInvalidSchema     = errors.New("invalid schema")
)
