package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/optfixture/archive"
	"github.com/rustyeddy/optfixture/fixture"
)

func newArchiveCmd() *cobra.Command {
	var (
		root    string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Pack a dataset into a .tar.xz file",
		Long: `Pack the dataset tree into one xz-compressed tarball for sharing.

Example:
  optfixture archive --root dataset --out dataset.tar.xz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				outPath = filepath.Clean(root) + ".tar.xz"
			}
			n, err := archive.WriteTarXZ(root, outPath)
			if err != nil {
				return fmt.Errorf("archive %s: %w", root, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %d files from %s to %s\n", n, root, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", fixture.DefaultRoot, "dataset root directory")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (default <root>.tar.xz)")
	return cmd
}
