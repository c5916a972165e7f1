package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <dataset> <row>",
		Short: "Display one row with every field",
		Long: "Show prints one row. The row is named by its ID, the short ID shown by\n" +
			"list, or the value of the dataset's first column.",
		Args: usage(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTable(args[0], func(t *table) error {
				row, err := t.resolve(args[1])
				if err != nil {
					return err
				}
				cb := t.callbacks(nil)
				cb.OnView = func(rec types.Record) error {
					if asJSON {
						return writeRowJSON(cmd.OutOrStdout(), types.Row{ID: row.ID, Record: rec})
					}
					return writeDetail(cmd.OutOrStdout(), t, row.ID, rec)
				}
				return t.dispatch(t.engine("", cb), engine.ActionView, row)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <dataset> key=value...",
		Short: "Append a row to a dataset",
		Long: `Add stores a new row built from key=value pairs. Values that parse as JSON
keep their type, so grossCTC=1200000 is a number and name=Ana is a string.

Example:
  payroll add employees empId=E1006 name="Ana Lopez" department=Sales status=Active`,
		Args: usage(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			return a.withTable(args[0], func(t *table) error {
				if err := t.engine("", t.callbacks(patch)).Dispatch(engine.ActionAdd, nil); err != nil {
					return fmt.Errorf("add row: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s/%s\n", args[0], t.written)
				return nil
			})
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <dataset> <row> key=value...",
		Short: "Change fields of a row",
		Long: `Edit merges key=value pairs into an existing row. Setting a field to null
removes it.

Example:
  payroll edit employees E1005 status=Active
  payroll edit employees E1002 manager=null`,
		Args: usage(cobra.MinimumNArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseAssignments(args[2:])
			if err != nil {
				return err
			}
			return a.withTable(args[0], func(t *table) error {
				row, err := t.resolve(args[1])
				if err != nil {
					return err
				}
				if err := t.dispatch(t.engine("", t.callbacks(patch)), engine.ActionEdit, row); err != nil {
					return fmt.Errorf("edit row: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s/%s\n", args[0], t.written)
				return nil
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <dataset> <row>",
		Short: "Remove a row from a dataset",
		Args:  usage(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTable(args[0], func(t *table) error {
				row, err := t.resolve(args[1])
				if err != nil {
					return err
				}
				if err := t.dispatch(t.engine("", t.callbacks(nil)), engine.ActionDelete, row); err != nil {
					return fmt.Errorf("delete row: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", args[0], row.ID)
				return nil
			})
		},
	}
}

func writeRowJSON(w io.Writer, row types.Row) error {
	data, err := json.MarshalIndent(row, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeDetail prints the schema columns of rec followed by any fields the
// schema does not declare.
func writeDetail(w io.Writer, t *table, id string, rec types.Record) error {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	card := t.def.Options(engine.Callbacks{}).Card(rec)
	fmt.Fprintf(tw, "%s\n", card.Title)
	fmt.Fprintf(tw, "ID:\t%s\n", id)

	declared := make(map[string]bool)
	for _, c := range t.def.Columns {
		declared[c.Key] = true
		fmt.Fprintf(tw, "%s:\t%s\n", c.Label, c.Cell(rec))
	}
	for _, k := range rec.Keys() {
		if !declared[k] {
			fmt.Fprintf(tw, "%s:\t%s\n", k, rec.Get(k).String())
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
