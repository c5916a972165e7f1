package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// rowJSON is one line of a dataset file. The row ID lives beside the record,
// never inside it.
type rowJSON struct {
	RowID  string       `json:"row_id"`
	Record types.Record `json:"record"`
}

// decodeRow parses a dataset line. Lines that are a bare record object, as
// written by hand or by other tools, decode with an empty row ID.
func decodeRow(line json.RawMessage) (rowJSON, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return rowJSON{}, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}

	_, hasID := fields["row_id"]
	_, hasRecord := fields["record"]
	if hasID && hasRecord {
		var r rowJSON
		if err := json.Unmarshal(line, &r); err != nil {
			return rowJSON{}, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
		}
		if err := validateRowID(r.RowID); err != nil {
			return rowJSON{}, err
		}
		if r.Record == nil {
			r.Record = types.Record{}
		}
		return r, nil
	}

	if fields == nil {
		return rowJSON{}, fmt.Errorf("%w: line is not an object", types.ErrInvalidData)
	}
	var rec types.Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return rowJSON{}, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return rowJSON{Record: rec}, nil
}

func encodeRow(id string, rec types.Record) (json.RawMessage, error) {
	return json.Marshal(rowJSON{RowID: id, Record: rec})
}

// newRowID generates a time-ordered UUID v7.
func newRowID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func validateRowID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", types.ErrInvalidID, id)
	}
	return nil
}
