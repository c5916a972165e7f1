package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/payroll/internal/sqlite"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

type datasetInfo struct {
	Name  string         `json:"name"`
	Title string         `json:"title"`
	Rows  int            `json:"rows"`
	View  types.ViewMode `json:"view"`
}

func newDatasetsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List the datasets in the data directory",
		Args:  usage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []datasetInfo
			err := a.withStore(func(b *sqlite.Backend) error {
				for _, name := range b.Names() {
					t, err := a.openTable(b, name)
					if err != nil {
						return err
					}
					infos = append(infos, datasetInfo{
						Name:  name,
						Title: t.def.Title,
						Rows:  len(t.rows),
						View:  t.def.ViewMode(),
					})
				}
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if infos == nil {
					infos = []datasetInfo{}
				}
				data, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal datasets: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(infos) == 0 {
				fmt.Fprintln(out, "No datasets found. Run 'payroll init' to create the sample data.")
				return nil
			}
			var sb strings.Builder
			w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tROWS\tVIEW\tTITLE")
			fmt.Fprintln(w, "----\t----\t----\t-----")
			for _, d := range infos {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", d.Name, d.Rows, d.View, d.Title)
			}
			w.Flush()
			for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
				fmt.Fprintln(out, strings.TrimRight(line, " "))
			}
			fmt.Fprintf(out, "Total: %d dataset(s)\n", len(infos))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
