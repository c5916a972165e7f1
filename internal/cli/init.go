package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/payroll/internal/paths"
	"github.com/mesh-intelligence/payroll/internal/schema"
	"github.com/mesh-intelligence/payroll/internal/sqlite"
)

func newInitCmd(a *app) *cobra.Command {
	var exportSchemas bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize payroll storage",
		Long: "Create the configuration and data directories, write the sample datasets\n" +
			"that do not exist yet and initialize the storage backend.",
		Args: usage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.storeConfig()
			if err != nil {
				return err
			}

			created, err := sqlite.Seed(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("seed datasets: %w", err)
			}

			if err := a.withStore(func(*sqlite.Backend) error { return nil }); err != nil {
				return fmt.Errorf("initialize storage: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initialized payroll in %s\n", cfg.DataDir)
			if len(created) > 0 {
				fmt.Fprintf(out, "Seeded: %s\n", strings.Join(created, ", "))
			}

			if exportSchemas {
				dir := paths.SchemaDir(a.configDir)
				written, err := schema.Export(dir)
				if err != nil {
					return fmt.Errorf("export schemas: %w", err)
				}
				if len(written) > 0 {
					fmt.Fprintf(out, "Wrote schemas to %s: %s\n", dir, strings.Join(written, ", "))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exportSchemas, "schemas", false, "also write the built-in table schemas to the config directory for editing")
	return cmd
}
