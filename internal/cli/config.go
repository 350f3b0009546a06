package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/stevenrrose/Shim-Index/pkg/piece"
	"github.com/stevenrrose/Shim-Index/pkg/serial"
	"github.com/stevenrrose/Shim-Index/pkg/tiling"
)

// =============================================================================
// Config File
// =============================================================================

// fileConfig mirrors the layout of config.toml. Zero values mean "unset";
// built-in defaults fill them at resolve time.
type fileConfig struct {
	Space  serial.Space      `toml:"space"`
	Piece  piece.Options     `toml:"piece"`
	Page   tiling.PageConfig `toml:"page"`
	Limits tiling.Limits     `toml:"limits"`
	Output outputConfig      `toml:"output"`
}

// outputConfig holds output preferences for the export commands.
type outputConfig struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

// configDir returns the configuration directory using the XDG standard
// (~/.config/shimindex/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads the TOML config file into c.cfg. With an empty path the
// default location is used, and a missing file there is not an error.
func (c *CLI) loadConfig(path string) error {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil // no home directory, run on built-in defaults
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.cfg = cfg
	c.cfgPath = path
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// effectiveConfig is the file config with every unset field defaulted.
func (c *CLI) effectiveConfig() fileConfig {
	eff := c.cfg
	if eff.Space.X == 0 {
		eff.Space.X = defaultShims
	}
	if eff.Space.Y == 0 {
		eff.Space.Y = defaultSlots
	}

	opts := tiling.Options{Page: eff.Page}
	opts.SetPageDefaults()
	eff.Page = opts.Page

	if eff.Output.Dir == "" {
		eff.Output.Dir = "."
	}
	if eff.Output.Format == "" {
		eff.Output.Format = tiling.FormatSVG
	}
	return eff
}

// =============================================================================
// Shared Flags
// =============================================================================

// spaceFlags binds the space parameters common to most commands.
type spaceFlags struct {
	shims uint64
	slots uint64
	seed  uint64
}

// addSpaceFlags declares the space parameter flags on cmd.
func addSpaceFlags(cmd *cobra.Command, f *spaceFlags) {
	cmd.Flags().Uint64VarP(&f.shims, "shims", "x", defaultShims, "shims per slot letter (1-26)")
	cmd.Flags().Uint64VarP(&f.slots, "slots", "y", defaultSlots, "slots per piece")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed selecting the enumeration order")
}

// resolveSpace merges built-in defaults, config file values and set flags,
// in increasing precedence.
func (c *CLI) resolveSpace(cmd *cobra.Command, f spaceFlags) serial.Space {
	sp := serial.Space{X: defaultShims, Y: defaultSlots}
	if c.cfg.Space.X != 0 {
		sp.X = c.cfg.Space.X
	}
	if c.cfg.Space.Y != 0 {
		sp.Y = c.cfg.Space.Y
	}
	sp.Seed = c.cfg.Space.Seed

	fl := cmd.Flags()
	if fl.Changed("shims") {
		sp.X = f.shims
	}
	if fl.Changed("slots") {
		sp.Y = f.slots
	}
	if fl.Changed("seed") {
		sp.Seed = f.seed
	}
	return sp
}

// pieceFlags binds the outline options shared by piece-producing commands.
type pieceFlags struct {
	cropped     bool
	trapezoidal bool
}

// addPieceFlags declares the outline flags on cmd.
func addPieceFlags(cmd *cobra.Command, f *pieceFlags) {
	cmd.Flags().BoolVar(&f.cropped, "cropped", false, "trim shims to the common inner span")
	cmd.Flags().BoolVar(&f.trapezoidal, "trapezoidal", false, "four-sided shims with a blunt tip")
}

// resolvePiece merges config file values and set flags.
func (c *CLI) resolvePiece(cmd *cobra.Command, f pieceFlags) piece.Options {
	o := c.cfg.Piece
	fl := cmd.Flags()
	if fl.Changed("cropped") {
		o.Cropped = f.cropped
	}
	if fl.Changed("trapezoidal") {
		o.Trapezoidal = f.trapezoidal
	}
	return o
}

// =============================================================================
// Config Command
// =============================================================================

// configCommand prints the effective configuration after merging the config
// file with built-in defaults.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfig()
		},
	}
}

func (c *CLI) runConfig() error {
	if c.cfgPath != "" {
		printDetail("config file: %s", c.cfgPath)
	} else if dir, err := configDir(); err == nil {
		printDetail("config file: %s (not found, using defaults)", filepath.Join(dir, "config.toml"))
	}
	printNewline()

	if err := toml.NewEncoder(os.Stdout).Encode(c.effectiveConfig()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
