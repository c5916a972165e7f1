package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/payroll/internal/render"
)

type listOptions struct {
	search  string
	sorts   []string
	view    string
	asJSON  bool
	limit   int
	offset  int
	compact bool
	width   int
}

func newListCmd(a *app) *cobra.Command {
	var o listOptions

	cmd := &cobra.Command{
		Use:   "list <dataset> [key=value...]",
		Short: "Search, filter and sort a dataset",
		Long: `List derives a view of a dataset and prints it in the table, card, grid
or kanban layout.

Arguments after the dataset name are exact-match filters; the value "all"
leaves a filter off. Each --sort toggles like a header click: naming the
same key twice sorts it descending.

Example:
  payroll list employees
  payroll list employees department=Sales --search mumbai
  payroll list employees --sort grossCTC --sort grossCTC --limit 3
  payroll list payroll_runs --view kanban
  payroll list attendance status=Present --json`,
		Args: usage(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.viewFlag(o.view)
			if err != nil {
				return err
			}
			limit := o.limit
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.GetInt(cfgKeyPageSize)
			}

			return a.withTable(args[0], func(t *table) error {
				eng := t.engine(view, t.callbacks(nil))
				eng.SetSearchTerm(o.search)
				for _, key := range o.sorts {
					eng.SetSort(key)
				}
				if err := t.applyFilters(eng, args[1:]); err != nil {
					return err
				}

				v := eng.Derive(t.records())
				ro := render.Options{
					Width:   o.width,
					Offset:  o.offset,
					Limit:   limit,
					Compact: o.compact,
					RowIDs:  t.rowIDs(),
				}
				return render.Write(render.ForView(v, o.asJSON), cmd.OutOrStdout(), v, eng.Options(), ro)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.search, "search", "s", "", "case-insensitive text matched against every field")
	f.StringArrayVar(&o.sorts, "sort", nil, "sort by field; repeat to toggle direction")
	f.StringVar(&o.view, "view", "", "layout: table, card, grid or kanban")
	f.BoolVar(&o.asJSON, "json", false, "output as JSON")
	f.IntVar(&o.limit, "limit", 0, "maximum number of rows (0 = no limit)")
	f.IntVar(&o.offset, "offset", 0, "skip this many rows")
	f.BoolVar(&o.compact, "compact", false, "show only the leading columns")
	f.IntVar(&o.width, "width", 0, "layout width for cards, grid and kanban")
	return cmd
}
