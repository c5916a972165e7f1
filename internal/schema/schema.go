// Package schema loads table definitions: the columns, filters, card keys
// and page summary that describe how a dataset is presented. Definitions
// ship embedded for the seeded datasets and can be overridden by YAML files
// in the configuration directory.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// OverrideDirName is the directory under the config dir searched for
// schema overrides.
const OverrideDirName = "schemas"

// Table is the presentation definition of one dataset.
type Table struct {
	Name              string             `yaml:"name"`
	Title             string             `yaml:"title"`
	SearchPlaceholder string             `yaml:"search_placeholder"`
	DefaultView       string             `yaml:"default_view"`
	AddLabel          string             `yaml:"add_label"`
	CardTitleKey      string             `yaml:"card_title_key"`
	CardSubtitleKey   string             `yaml:"card_subtitle_key"`
	CardImageKey      string             `yaml:"card_image_key"`
	LaneKey           string             `yaml:"lane_key"`
	Columns           []types.ColumnSpec `yaml:"columns"`
	Filters           []types.FilterSpec `yaml:"filters"`
	Summary           []SummaryItem      `yaml:"summary"`
}

// Names lists the datasets that have an embedded definition.
func Names() []string {
	entries, err := fs.ReadDir(defaults, "defaults")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Export writes the embedded definitions into dir as <name>.yaml, leaving
// existing files alone, and returns the names written.
func Export(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create schema dir: %w", err)
	}
	var written []string
	for _, name := range Names() {
		path := filepath.Join(dir, name+".yaml")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		data, err := defaults.ReadFile("defaults/" + name + ".yaml")
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write schema %s: %w", name, err)
		}
		written = append(written, name)
	}
	return written, nil
}

// Load returns the definition for dataset name. A file
// <overrideDir>/<name>.yaml wins over the embedded default. Returns
// ErrSchemaNotFound when neither exists.
func Load(name, overrideDir string) (*Table, error) {
	file := name + ".yaml"

	if overrideDir != "" {
		data, err := os.ReadFile(filepath.Join(overrideDir, file))
		switch {
		case err == nil:
			return Parse(data)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
	}

	data, err := defaults.ReadFile("defaults/" + file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrSchemaNotFound, name)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML definition and resolves column formats
// into render functions.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidSchema, err)
	}
	if err := t.resolve(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Table) resolve() error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", types.ErrInvalidSchema)
	}
	if _, err := types.ParseViewMode(t.DefaultView); err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrInvalidSchema, t.Name, err)
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("%w: %s: no columns", types.ErrInvalidSchema, t.Name)
	}
	for i := range t.Columns {
		c := &t.Columns[i]
		if c.Key == "" {
			return fmt.Errorf("%w: %s: column %d has no key", types.ErrInvalidSchema, t.Name, i)
		}
		if c.Label == "" {
			c.Label = c.Key
		}
		fn, err := Renderer(c.Format)
		if err != nil {
			return fmt.Errorf("%s: column %s: %w", t.Name, c.Key, err)
		}
		c.Render = fn
	}
	for i := range t.Filters {
		f := &t.Filters[i]
		if f.Key == "" {
			return fmt.Errorf("%w: %s: filter %d has no key", types.ErrInvalidSchema, t.Name, i)
		}
		switch f.Kind {
		case "":
			f.Kind = types.FilterSelect
		case types.FilterSelect, types.FilterText:
		default:
			return fmt.Errorf("%w: %s: filter %s has kind %q", types.ErrInvalidSchema, t.Name, f.Key, f.Kind)
		}
		if f.Label == "" {
			f.Label = f.Key
		}
	}
	for i := range t.Summary {
		if err := t.Summary[i].validate(); err != nil {
			return fmt.Errorf("%s: summary %d: %w", t.Name, i, err)
		}
	}
	return nil
}

// Infer builds a plain definition for a dataset without one: a column per
// field seen in records, in sorted order.
func Infer(name string, records []types.Record) *Table {
	seen := make(map[string]bool)
	var keys []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	t := &Table{Name: name, Title: name, SearchPlaceholder: "Search..."}
	for _, k := range keys {
		t.Columns = append(t.Columns, types.ColumnSpec{Key: k, Label: k, Render: renderPlain})
	}
	return t
}

// ViewMode returns the parsed default view.
func (t *Table) ViewMode() types.ViewMode {
	m, err := types.ParseViewMode(t.DefaultView)
	if err != nil {
		return types.ViewTable
	}
	return m
}

// Options converts the definition into engine options wired to cb.
func (t *Table) Options(cb engine.Callbacks) engine.Options {
	return engine.Options{
		Columns:           t.Columns,
		Filters:           t.Filters,
		SearchPlaceholder: t.SearchPlaceholder,
		DefaultView:       t.ViewMode(),
		CardTitleKey:      t.CardTitleKey,
		CardSubtitleKey:   t.CardSubtitleKey,
		CardImageKey:      t.CardImageKey,
		LaneKey:           t.LaneKey,
		Callbacks:         cb,
	}
}

// Filter returns the filter declared for key.
func (t *Table) Filter(key string) (types.FilterSpec, bool) {
	for _, f := range t.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return types.FilterSpec{}, false
}
