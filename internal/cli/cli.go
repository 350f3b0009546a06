// Package cli implements the shimindex command-line interface.
//
// This package provides commands for inspecting serial number spaces,
// generating serial numbers, building piece geometry, and exporting pieces
// as paginated documents or zip archives. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - space: Inspect a permutation space (size, generator parameters)
//   - generate: Print serial numbers for an index range or random sample
//   - piece: Build one piece and write its geometry or a rendered page
//   - export: Pack pieces into paginated PDF documents
//   - archive: Export one drawing per piece into zip archives
//   - browse: Page through a space interactively
//   - config: Print the effective configuration
//
// # Configuration
//
// Defaults come from an optional TOML file at
// $XDG_CONFIG_HOME/shimindex/config.toml; command-line flags override file
// values, which override built-in defaults.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stevenrrose/Shim-Index/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "shimindex"

	// Built-in space parameters used when neither flags nor the config
	// file set them. 2 * 6^4 = 2592 serial numbers.
	defaultShims uint64 = 6
	defaultSlots uint64 = 4
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg     fileConfig
	cfgPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The persistent pre-run loads the config file before any command executes.
func (c *CLI) RootCommand() *cobra.Command {
	var cfgFlag string

	root := &cobra.Command{
		Use:          "shimindex",
		Short:        "Shimindex enumerates and exports shim piece designs",
		Long:         `Shimindex walks the serial number space of shim pieces in a seeded pseudo-random order, builds the geometry of each piece, and exports the results as paginated PDF documents or zip archives of per-piece drawings.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cfgFlag)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&cfgFlag, "config", "", "config file (default $XDG_CONFIG_HOME/shimindex/config.toml)")

	// Register all subcommands
	root.AddCommand(c.spaceCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.pieceCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand reports the build metadata embedded at link time.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(buildinfo.String())
		},
	}
}

// =============================================================================
// Output Helpers
// =============================================================================

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
