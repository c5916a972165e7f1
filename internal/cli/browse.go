package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/payroll/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "browse <dataset>",
		Short: "Explore a dataset interactively",
		Long: `Browse opens a full-screen view of a dataset.

Keys:
  /      search (enter keeps the term, esc clears it)
  f, F   cycle the value of the selected filter, select the next filter
  c      clear filters
  1-9    sort by column; again for descending
  v      switch between table, card, grid and kanban
  enter  show the selected row
  d      delete the selected row
  q      quit`,
		Args: usage(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := a.viewFlag(view)
			if err != nil {
				return err
			}
			return a.withTable(args[0], func(t *table) error {
				title := t.def.Title
				if title == "" {
					title = t.def.Name
				}
				m, err := tui.New(title, t.engine(mode, t.callbacks(nil)), t)
				if err != nil {
					return err
				}
				return tui.Run(m)
			})
		},
	}
	cmd.Flags().StringVar(&view, "view", "", "initial layout: table, card, grid or kanban")
	return cmd
}
