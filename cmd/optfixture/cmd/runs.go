package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/optfixture/manifest"
	"github.com/rustyeddy/optfixture/pkg/id"
)

func newRunsCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "runs [RUN_ID]",
		Short: "List generator runs recorded in a SQLite manifest",
		Long: `Without arguments, list every run in the catalog. With a run id,
list the files that run wrote.

Examples:
  optfixture runs --db catalog.sqlite
  optfixture runs --db catalog.sqlite 01HXYZ...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			m, err := manifest.NewSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer m.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				issued, err := id.Time(args[0])
				if err != nil {
					return fmt.Errorf("run id %q: %w", args[0], err)
				}
				files, err := m.ListFiles(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Run %s issued %s, %d files\n", args[0], issued.Format(time.RFC3339), len(files))
				for _, f := range files {
					fmt.Fprintf(out, "%s %s %4d %s\n", f.Day, f.Minute, f.Rows, f.Path)
				}
				return nil
			}

			runs, err := m.ListRuns()
			if err != nil {
				return fmt.Errorf("query runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs recorded")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %s..%s  days=%d files=%d rows=%d  %s (%s)\n",
					r.RunID, r.FirstDay, r.LastDay, r.Days, r.Files, r.Rows,
					r.StartedAt.Format(time.RFC3339), r.EndedAt.Sub(r.StartedAt))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "catalog.sqlite", "path to SQLite manifest")
	return cmd
}
