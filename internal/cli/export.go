package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stevenrrose/Shim-Index/pkg/selection"
	"github.com/stevenrrose/Shim-Index/pkg/tiling"
)

// exportFlags holds the command-line flags shared by export and archive.
type exportFlags struct {
	space spaceFlags
	piece pieceFlags

	// page geometry
	pageWidth  float64
	pageHeight float64
	margin     float64
	padding    float64
	labelBand  float64
	minCols    int
	minRows    int

	// limits
	maxItems  uint64
	maxPerDoc int
	maxPages  int

	// selection (mutually exclusive sources)
	include       string
	exclude       string
	selectionFile string

	// job behaviour
	chunk  int
	title  string
	bounds bool
	dryRun bool
	format string // archive entry format, registered by archive only

	// output
	dir   string
	plain bool
}

// registerExportFlags declares the flag set shared by export and archive.
func registerExportFlags(cmd *cobra.Command, f *exportFlags) {
	addSpaceFlags(cmd, &f.space)
	addPieceFlags(cmd, &f.piece)

	fl := cmd.Flags()
	fl.Float64Var(&f.pageWidth, "page-width", tiling.DefaultPageWidth, "page width in points")
	fl.Float64Var(&f.pageHeight, "page-height", tiling.DefaultPageHeight, "page height in points")
	fl.Float64Var(&f.margin, "margin", tiling.DefaultMargin, "outer page margin in points")
	fl.Float64Var(&f.padding, "padding", tiling.DefaultPadding, "gap between grid cells in points")
	fl.Float64Var(&f.labelBand, "label-band", tiling.DefaultLabelBand, "label band height under each cell in points")
	fl.IntVar(&f.minCols, "min-cols", tiling.DefaultMinCols, "smallest column count the grid must fit")
	fl.IntVar(&f.minRows, "min-rows", tiling.DefaultMinRows, "smallest row count the grid must fit")

	fl.Uint64Var(&f.maxItems, "max-items", 0, "cap on exported pieces (0 = whole selection)")
	fl.IntVar(&f.maxPerDoc, "max-per-document", 0, "cap on pieces per document or archive (0 = unlimited)")
	fl.IntVar(&f.maxPages, "max-pages", 0, "cap on pages per document (0 = unlimited)")

	fl.StringVar(&f.include, "include", "", "only these indices, comma-separated")
	fl.StringVar(&f.exclude, "exclude", "", "all indices except these, comma-separated")
	fl.StringVar(&f.selectionFile, "selection-file", "", "load the selection from a JSON file")

	fl.IntVar(&f.chunk, "chunk", tiling.DefaultChunkSize, "pieces processed per scheduling step")
	fl.StringVar(&f.title, "title", "", "document title metadata")
	fl.BoolVar(&f.bounds, "bounds", false, "draw each piece's bounding box")
	fl.BoolVar(&f.dryRun, "dry-run", false, "record drawing commands as JSON instead of real output")

	fl.StringVarP(&f.dir, "dir", "o", "", "output directory (default from config, else .)")
	fl.BoolVar(&f.plain, "plain", false, "log progress instead of showing the progress UI")
}

// exportCommand creates the export command for paginated document output.
func (c *CLI) exportCommand() *cobra.Command {
	f := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export pieces as paginated PDF documents",
		Long: `Export pieces as paginated PDF documents.

Pieces are drawn at a uniform scale into a grid sized so that at least
--min-cols by --min-rows pieces fit per page, each cell labelled with its
serial number. Limits rotate output across numbered files
(pieces-<job>-001.pdf, ...), and the selection flags restrict the export
to a subset of the space.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, dir, err := c.exportOptions(cmd, f)
			if err != nil {
				return err
			}
			return c.runExportJob(cmd.Context(), tiling.KindDocuments, opts, dir, f.plain)
		},
	}

	registerExportFlags(cmd, f)
	return cmd
}

// exportOptions merges built-in defaults, config file values and set flags
// into job options, in increasing precedence. It returns the options and
// the output directory.
func (c *CLI) exportOptions(cmd *cobra.Command, f *exportFlags) (tiling.Options, string, error) {
	opts := tiling.Options{
		Space:  c.resolveSpace(cmd, f.space),
		Piece:  c.resolvePiece(cmd, f.piece),
		Page:   c.cfg.Page,
		Limits: c.cfg.Limits,
		Logger: c.Logger,
	}

	fl := cmd.Flags()
	if fl.Changed("page-width") {
		opts.Page.Width = f.pageWidth
	}
	if fl.Changed("page-height") {
		opts.Page.Height = f.pageHeight
	}
	if fl.Changed("margin") {
		opts.Page.Margin = f.margin
	}
	if fl.Changed("padding") {
		opts.Page.Padding = f.padding
	}
	if fl.Changed("label-band") {
		opts.Page.LabelBand = f.labelBand
	}
	if fl.Changed("min-cols") {
		opts.Page.MinCols = f.minCols
	}
	if fl.Changed("min-rows") {
		opts.Page.MinRows = f.minRows
	}

	if fl.Changed("max-items") {
		opts.Limits.MaxItems = f.maxItems
	}
	if fl.Changed("max-per-document") {
		opts.Limits.MaxPerDocument = f.maxPerDoc
	}
	if fl.Changed("max-pages") {
		opts.Limits.MaxPages = f.maxPages
	}

	sel, err := buildSelection(f)
	if err != nil {
		return tiling.Options{}, "", err
	}
	opts.Selection = sel

	opts.ChunkSize = f.chunk
	opts.Title = f.title
	opts.DrawBounds = f.bounds
	opts.DryRun = f.dryRun

	dir := c.cfg.Output.Dir
	if fl.Changed("dir") {
		dir = f.dir
	}
	if dir == "" {
		dir = "."
	}
	return opts, dir, nil
}

// buildSelection derives the job selection from the mutually exclusive
// selection flags. No flags means the whole space.
func buildSelection(f *exportFlags) (selection.Selection, error) {
	sources := 0
	for _, s := range []string{f.include, f.exclude, f.selectionFile} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return selection.Selection{}, fmt.Errorf("--include, --exclude and --selection-file are mutually exclusive")
	}

	switch {
	case f.include != "":
		ids, err := parseIndices(f.include)
		if err != nil {
			return selection.Selection{}, fmt.Errorf("parse --include: %w", err)
		}
		return selection.Selection{Mode: selection.ModeInclude, Indices: ids}, nil
	case f.exclude != "":
		ids, err := parseIndices(f.exclude)
		if err != nil {
			return selection.Selection{}, fmt.Errorf("parse --exclude: %w", err)
		}
		return selection.Selection{Mode: selection.ModeExclude, Indices: ids}, nil
	case f.selectionFile != "":
		return selection.ImportJSON(f.selectionFile)
	}
	return selection.Selection{}, nil
}

// parseIndices parses a comma-separated list of indices into a sorted set.
func parseIndices(s string) (selection.Set, error) {
	var set selection.Set
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", part, err)
		}
		set.Add(v)
	}
	return set, nil
}

// runExportJob starts a job of the given kind, drives it to completion with
// either the progress UI or plain logging, and reports the outcome.
func (c *CLI) runExportJob(ctx context.Context, kind string, opts tiling.Options, dir string, plain bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	var written []string
	opts.OnDocument = func(doc tiling.Document) error {
		path := filepath.Join(dir, doc.Name)
		if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	var summary tiling.Summary
	opts.OnFinish = func(s tiling.Summary) { summary = s }

	exporter := tiling.NewExporter(c.Logger)
	var job *tiling.Job
	var err error
	if kind == tiling.KindArchives {
		job, err = exporter.Archives(opts)
	} else {
		job, err = exporter.Documents(opts)
	}
	if err != nil {
		return err
	}

	var runErr error
	if plain {
		prog := newProgress(c.Logger)
		runErr = job.Run(ctx)
		if runErr == nil {
			prog.done(fmt.Sprintf("Job %s finished", job.ID()))
		}
	} else {
		m := newExportModel(ctx, job)
		p := tea.NewProgram(m)
		if _, err := p.Run(); err != nil {
			return err
		}
		runErr = job.Err()
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			printWarning("Export cancelled, partial output kept")
		}
		return runErr
	}

	printExportSummary(kind, summary, written)
	return nil
}

// printExportSummary reports a finished job and the files it produced.
func printExportSummary(kind string, s tiling.Summary, written []string) {
	if s.Items == 0 {
		printError("No pieces matched the selection")
		return
	}
	if s.Limited {
		printWarning("Item limit reached, selection truncated")
	}
	dur := s.Duration.Round(time.Millisecond)
	if kind == tiling.KindArchives {
		printSuccess("Exported %d pieces into %d archives (%s)", s.Items, s.Documents, dur)
	} else {
		printSuccess("Exported %d pieces onto %d pages in %d documents (%s)", s.Items, s.Pages, s.Documents, dur)
	}
	for _, path := range written {
		printFile(path)
	}
}
