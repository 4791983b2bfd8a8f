package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/optfixture/config"
	"github.com/rustyeddy/optfixture/fixture"
	"github.com/rustyeddy/optfixture/inspect"
)

func newInspectCmd() *cobra.Command {
	var (
		configPath string
		root       string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Check a generated dataset and print column statistics",
		Long: `Read every minute file back, verify the header, field counts, row counts
and value ranges, and compare the tree against the expected day/minute layout.

Exits non-zero when a file is malformed, a value is out of range, or a
planned file is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.LoadFromFile(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("root") {
				cfg.Dataset.Root = root
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}

			rep, err := inspect.Check(opts.Root, opts.Ranges, opts.RowsPerFile)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", opts.Root, err)
			}
			missing, err := inspect.Missing(opts.Root, fixture.Plan(opts.Start, opts.Days, opts.FilesPerDay))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Dataset %s: %d day folders, %d files, %d rows\n", rep.Root, rep.Days, rep.Files, rep.Rows)
			fmt.Fprintf(out, "%-14s %8s %12s %12s %12s %12s\n", "COLUMN", "COUNT", "MIN", "MAX", "MEAN", "STDDEV")
			for _, c := range rep.Columns {
				fmt.Fprintf(out, "%-14s %8d %12.4f %12.4f %12.4f %12.4f\n", c.Name, c.Count, c.Min, c.Max, c.Mean, c.StdDev)
			}
			if len(rep.GammaWindow) > 0 {
				fmt.Fprintf(out, "GAMMA_CALL +/-%d rows at mid strike: last %.4f, trend %+.5f/file\n",
					inspect.GammaWindow, rep.GammaWindow[len(rep.GammaWindow)-1], rep.GammaTrend.Slope)
			}
			for _, m := range rep.Malformed {
				fmt.Fprintf(out, "malformed: %s\n", m)
			}
			for _, v := range rep.Violations {
				fmt.Fprintf(out, "out of range: %s\n", v)
			}
			for _, p := range missing {
				fmt.Fprintf(out, "missing: %s\n", p)
			}

			if err := rep.Err(); err != nil {
				return err
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d planned files missing, first: %s", len(missing), missing[0])
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config the dataset was generated with")
	cmd.Flags().StringVar(&root, "root", fixture.DefaultRoot, "dataset root directory")
	return cmd
}
