package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/internal/schema"
)

type statsOutput struct {
	Dataset       string                `json:"dataset"`
	Summary       []schema.SummaryValue `json:"summary"`
	Stats         engine.Stats          `json:"stats"`
	ActiveFilters int                   `json:"active_filters"`
}

func newStatsCmd(a *app) *cobra.Command {
	var (
		search string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "stats <dataset> [key=value...]",
		Short: "Show the page summary and match statistics of a dataset",
		Long: "Stats prints the dataset's summary figures, computed over every row, and\n" +
			"how many rows the given search and filters match.",
		Args: usage(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTable(args[0], func(t *table) error {
				eng := t.engine("", t.callbacks(nil))
				eng.SetSearchTerm(search)
				if err := t.applyFilters(eng, args[1:]); err != nil {
					return err
				}
				data := t.records()
				v := eng.Derive(data)
				res := statsOutput{
					Dataset:       t.def.Name,
					Summary:       t.def.Summarize(data),
					Stats:         v.Stats,
					ActiveFilters: v.ActiveFilterCount,
				}

				out := cmd.OutOrStdout()
				if asJSON {
					b, err := json.MarshalIndent(res, "", "  ")
					if err != nil {
						return fmt.Errorf("marshal stats: %w", err)
					}
					fmt.Fprintln(out, string(b))
					return nil
				}

				fmt.Fprintln(out, t.def.Title)
				for _, s := range res.Summary {
					fmt.Fprintf(out, "  %s\n", s)
				}
				fmt.Fprintf(out, "%s (%d%% match)\n", v.Summary(), v.Stats.MatchRate)
				fmt.Fprintf(out, "Columns: %d\n", v.Stats.Columns)
				if v.ActiveFilterCount > 0 {
					fmt.Fprintf(out, "Active filters: %d\n", v.ActiveFilterCount)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text matched against every field")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
