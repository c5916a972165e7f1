package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/internal/paths"
	"github.com/mesh-intelligence/payroll/internal/render"
	"github.com/mesh-intelligence/payroll/internal/schema"
	"github.com/mesh-intelligence/payroll/internal/sqlite"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

var (
	errUsage        = errors.New("invalid arguments")
	errAmbiguousRow = errors.New("ambiguous row reference")
)

// openStore attaches the SQLite backend. The caller must Detach it.
func (a *app) openStore() (*sqlite.Backend, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	b := sqlite.NewBackend()
	if err := b.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return b, nil
}

// table is one dataset opened for a command: its store handle, its rows and
// the definition used to present them.
type table struct {
	ds   types.Dataset
	def  *schema.Table
	rows []types.Row

	// target is the row edit and delete act on.
	target types.Row
	// written is the row ID of the last add or edit.
	written string
}

// openTable loads dataset name from b along with its schema. Datasets with
// no schema get one inferred from their fields.
func (a *app) openTable(b *sqlite.Backend, name string) (*table, error) {
	ds, err := b.Dataset(name)
	if err != nil {
		if errors.Is(err, types.ErrDatasetNotFound) {
			return nil, fmt.Errorf("%w: %q (have: %s)", types.ErrDatasetNotFound, name, strings.Join(b.Names(), ", "))
		}
		return nil, err
	}
	rows, err := ds.Fetch()
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}

	def, err := schema.Load(name, paths.SchemaDir(a.configDir))
	switch {
	case errors.Is(err, types.ErrSchemaNotFound):
		slog.Debug("inferring schema", "dataset", name)
		def = schema.Infer(name, sqlite.Records(rows))
	case err != nil:
		return nil, err
	}
	return &table{ds: ds, def: def, rows: rows}, nil
}

// records returns the record of every row in store order.
func (t *table) records() []types.Record {
	return sqlite.Records(t.rows)
}

func (t *table) rowIDs() []string {
	ids := make([]string, len(t.rows))
	for i, r := range t.rows {
		ids[i] = r.ID
	}
	return ids
}

// engine builds a table engine over t with cb as action handlers. A
// non-empty view overrides the dataset's default view.
func (t *table) engine(view types.ViewMode, cb engine.Callbacks) *engine.Engine {
	opts := t.def.Options(cb)
	if view != "" {
		opts.DefaultView = view
	}
	return engine.New(opts)
}

// callbacks wires engine actions to dataset operations. Add stores patch
// as a new row and edit merges patch into the stored row. Edit and delete act
// on the targeted row by ID, so rows with identical records stay distinct.
func (t *table) callbacks(patch types.Record) engine.Callbacks {
	cb := engine.Callbacks{
		OnDelete: func(types.Record) error {
			id := t.target.ID
			if id == "" {
				return types.ErrInvalidID
			}
			if err := t.ds.Delete(id); err != nil {
				return err
			}
			slog.Debug("deleted row", "dataset", t.ds.Name(), "id", id)
			return nil
		},
	}
	if patch == nil {
		return cb
	}
	cb.OnAdd = func() error {
		id, err := t.ds.Set("", patch)
		if err != nil {
			return err
		}
		t.written = id
		slog.Debug("added row", "dataset", t.ds.Name(), "id", id)
		return nil
	}
	cb.OnEdit = func(rec types.Record) error {
		if t.target.ID == "" {
			return types.ErrInvalidID
		}
		id, err := t.ds.Set(t.target.ID, rec.Merge(patch))
		if err != nil {
			return err
		}
		t.written = id
		slog.Debug("edited row", "dataset", t.ds.Name(), "id", id)
		return nil
	}
	return cb
}

// Target sets the row the next dispatched action applies to.
func (t *table) Target(row types.Row) {
	t.target = row
}

// Fetch reloads the rows of the dataset.
func (t *table) Fetch() ([]types.Row, error) {
	rows, err := t.ds.Fetch()
	if err != nil {
		return nil, err
	}
	t.rows = rows
	return rows, nil
}

// dispatch runs action on eng against row.
func (t *table) dispatch(eng *engine.Engine, action engine.Action, row types.Row) error {
	t.Target(row)
	return eng.Dispatch(action, row.Record)
}

// resolve finds the row named by ref: a full row ID, the short ID shown in
// listings, or the value of the dataset's first column.
func (t *table) resolve(ref string) (types.Row, error) {
	for _, r := range t.rows {
		if r.ID == ref {
			return r, nil
		}
	}

	match := func(pred func(types.Row) bool) (types.Row, int) {
		var found types.Row
		n := 0
		for _, r := range t.rows {
			if pred(r) {
				found = r
				n++
			}
		}
		return found, n
	}

	row, n := match(func(r types.Row) bool { return render.ShortID(r.ID) == ref })
	if n == 0 && len(t.def.Columns) > 0 {
		key := t.def.Columns[0].Key
		row, n = match(func(r types.Row) bool { return r.Record.Get(key).String() == ref })
	}
	switch n {
	case 0:
		return types.Row{}, fmt.Errorf("%w: %q in %s", types.ErrNotFound, ref, t.ds.Name())
	case 1:
		return row, nil
	default:
		return types.Row{}, fmt.Errorf("%w: %q matches %d rows in %s", errAmbiguousRow, ref, n, t.ds.Name())
	}
}

// parseAssignments turns key=value arguments into a record patch. Values
// are parsed as JSON scalars when they are valid JSON.
func parseAssignments(args []string) (types.Record, error) {
	rec := types.Record{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", errUsage, arg)
		}
		rec[key] = types.ParseValue(value)
	}
	return rec, nil
}

// applyFilters validates key=value filter arguments against the table
// definition and sets them on eng.
func (t *table) applyFilters(eng *engine.Engine, args []string) error {
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return fmt.Errorf("%w: expected key=value filter, got %q", types.ErrInvalidFilter, arg)
		}
		f, declared := t.def.Filter(key)
		_, column := eng.Options().Column(key)
		if !declared && !column {
			return fmt.Errorf("%w: %s has no field %q", types.ErrInvalidFilter, t.def.Name, key)
		}
		if declared && len(f.Options) > 0 && types.IsActiveFilterValue(value) && !hasOption(f, value) {
			return fmt.Errorf("%w: %s=%q (options: %s)", types.ErrInvalidFilter, key, value, strings.Join(optionValues(f), ", "))
		}
		eng.SetFilter(key, value)
	}
	return nil
}

func hasOption(f types.FilterSpec, value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func optionValues(f types.FilterSpec) []string {
	out := make([]string, len(f.Options))
	for i, o := range f.Options {
		out[i] = o.Value
	}
	return out
}

// viewFlag parses --view, falling back to the configured default_view.
func (a *app) viewFlag(flag string) (types.ViewMode, error) {
	if flag == "" {
		flag = a.cfg.GetString(cfgKeyDefaultView)
	}
	if flag == "" {
		return "", nil
	}
	return types.ParseViewMode(flag)
}

// withStore attaches the store for the duration of fn. A failed Detach is
// reported when fn itself succeeded.
func (a *app) withStore(fn func(b *sqlite.Backend) error) (err error) {
	b, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if derr := b.Detach(); derr != nil && err == nil {
			err = fmt.Errorf("detach store: %w", derr)
		}
	}()
	return fn(b)
}

// withTable opens dataset name for the duration of fn.
func (a *app) withTable(name string, fn func(t *table) error) error {
	return a.withStore(func(b *sqlite.Backend) error {
		t, err := a.openTable(b, name)
		if err != nil {
			return err
		}
		return fn(t)
	})
}
