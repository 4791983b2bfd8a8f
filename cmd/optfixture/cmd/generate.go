package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rustyeddy/optfixture/config"
	"github.com/rustyeddy/optfixture/fixture"
	"github.com/rustyeddy/optfixture/internal/metrics"
	"github.com/rustyeddy/optfixture/manifest"
)

// generateFlags override the config file, which overrides the defaults.
type generateFlags struct {
	configPath   string
	root         string
	start        string
	days         int
	files        int
	rows         int
	seed         int64
	manifestType string
	manifestPath string
	metricsFile  string
}

func newGenerateCmd() *cobra.Command {
	g := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the synthetic dataset tree",
		Long: `Write dataset/<YYYYMMDD>/<HHMM>.csv files of random option-chain rows.

Missing directories are created and existing files are overwritten.

Examples:
  optfixture generate
  optfixture generate --root /tmp/chain --days 5 --seed 42
  optfixture generate --config fixture.yaml --manifest sqlite --manifest-path catalog.sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd)
		},
	}
	g.bind(cmd)
	return cmd
}

func (g *generateFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&g.configPath, "config", "c", "", "YAML or JSON config file")
	fs.StringVar(&g.root, "root", fixture.DefaultRoot, "dataset root directory")
	fs.StringVar(&g.start, "start", fixture.DefaultStart.Format(config.StartLayout), "first day and time of day (UTC), \"YYYY-MM-DD HH:MM\"")
	fs.IntVar(&g.days, "days", fixture.DefaultDays, "number of day folders")
	fs.IntVar(&g.files, "files", fixture.DefaultFilesPerDay, "minute files per day folder")
	fs.IntVar(&g.rows, "rows", fixture.DefaultRowsPerFile, "data rows per minute file")
	fs.Int64Var(&g.seed, "seed", 0, "random seed (0 seeds from the clock)")
	fs.StringVar(&g.manifestType, "manifest", manifest.TypeNone, "catalog written files: none|csv|sqlite")
	fs.StringVar(&g.manifestPath, "manifest-path", "", "manifest output path")
	fs.StringVar(&g.metricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")
}

// resolve layers flags the user set over the config file or defaults.
func (g *generateFlags) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		cfg, err = config.LoadFromFile(g.configPath)
		if err != nil {
			return nil, err
		}
	}

	if fs.Changed("root") {
		cfg.Dataset.Root = g.root
	}
	if fs.Changed("start") {
		cfg.Dataset.Start = g.start
	}
	if fs.Changed("days") {
		cfg.Dataset.Days = g.days
	}
	if fs.Changed("files") {
		cfg.Dataset.FilesPerDay = g.files
	}
	if fs.Changed("rows") {
		cfg.Dataset.RowsPerFile = g.rows
	}
	if fs.Changed("seed") {
		cfg.Dataset.Seed = g.seed
	}
	if fs.Changed("manifest") {
		cfg.Manifest.Type = g.manifestType
	}
	if fs.Changed("manifest-path") {
		cfg.Manifest.Path = g.manifestPath
	}
	if fs.Changed("metrics-file") {
		cfg.Metrics.Textfile = g.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func (g *generateFlags) run(cmd *cobra.Command) (err error) {
	cfg, err := g.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	log := logger(cmd, cfg.Log.Level)

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	man, err := manifest.Open(cfg.Manifest.Type, cfg.Manifest.Path)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer func() {
		if cerr := man.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close manifest: %w", cerr)
		}
	}()

	recs := []fixture.Recorder{man}
	var m *metrics.Run
	if cfg.Metrics.Textfile != "" {
		m = metrics.NewRun()
		recs = append(recs, m)
	}

	gen, err := fixture.New(opts, fixture.MultiRecorder(recs...), log)
	if err != nil {
		return err
	}
	sum, err := gen.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %d files (%d rows) in %d day folders under %s\n", sum.Files, sum.Rows, sum.Days, sum.Root)
	fmt.Fprintf(out, "  Run ID: %s\n", sum.RunID)
	if cfg.Manifest.Type == manifest.TypeCSV || cfg.Manifest.Type == manifest.TypeSQLite {
		fmt.Fprintf(out, "  Manifest: %s (%s)\n", cfg.Manifest.Path, cfg.Manifest.Type)
	}

	if m != nil {
		m.Observe(sum)
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		fmt.Fprintf(out, "  Metrics: %s\n", cfg.Metrics.Textfile)
	}
	return nil
}
