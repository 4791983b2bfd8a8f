package cmd

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/optfixture/internal/logging"
)

// NewRootCmd builds the optfixture command tree. Running the root command
// with no subcommand generates the dataset, same as "generate".
func NewRootCmd() *cobra.Command {
	var logLevel string
	gen := &generateFlags{}

	root := &cobra.Command{
		Use:   "optfixture",
		Short: "Generate synthetic option-chain CSV fixtures",
		Long: `optfixture writes a tree of dummy option-chain snapshots for seeding
test datasets:

  dataset/<YYYYMMDD>/<HHMM>.csv

Run with no arguments it produces 50 day folders starting 2024-05-02, each
holding 40 minute files from 09:30, each with 50 rows of
Strike Price,CALL_LTP,PUT_LTP,GAMMA_CALL. Existing files are overwritten.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gen.run(cmd)
		},
	}
	gen.bind(root)

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (default from config, else info)")

	root.AddCommand(
		newGenerateCmd(),
		newInspectCmd(),
		newArchiveCmd(),
		newRunsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args. Canceling ctx stops a
// running generate at the next file boundary.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// logger returns a stderr logger. An explicit --log-level wins over fallback.
func logger(cmd *cobra.Command, fallback string) zerolog.Logger {
	level := fallback
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		level = f.Value.String()
	}
	return logging.NewLogger(level, cmd.ErrOrStderr())
}
