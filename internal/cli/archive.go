package cli

import (
	"github.com/spf13/cobra"

	"github.com/stevenrrose/Shim-Index/pkg/tiling"
)

// archiveCommand creates the archive command for one-file-per-piece output.
func (c *CLI) archiveCommand() *cobra.Command {
	f := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Export one drawing per piece into zip archives",
		Long: `Export one drawing per piece into zip archives.

Each piece becomes a standalone SVG or PDF file named after its serial
number, packed into zip archives (pieces-<job>-001.zip, ...). Page flags
do not apply; --max-per-document caps the entries per archive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, dir, err := c.exportOptions(cmd, f)
			if err != nil {
				return err
			}
			opts.Format = tiling.FormatSVG
			if c.cfg.Output.Format != "" {
				opts.Format = c.cfg.Output.Format
			}
			if cmd.Flags().Changed("format") {
				opts.Format = f.format
			}
			if err := tiling.ValidateFormat(opts.Format); err != nil {
				return err
			}
			return c.runExportJob(cmd.Context(), tiling.KindArchives, opts, dir, f.plain)
		},
	}

	registerExportFlags(cmd, f)
	cmd.Flags().StringVarP(&f.format, "format", "f", tiling.FormatSVG, "entry format: svg or pdf")
	return cmd
}
