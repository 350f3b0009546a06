package tiling

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stevenrrose/Shim-Index/pkg/piece"
	"github.com/stevenrrose/Shim-Index/pkg/selection"
	"github.com/stevenrrose/Shim-Index/pkg/serial"
)

// Default values shared by the CLI and the export UI.
const (
	// DefaultPageWidth and DefaultPageHeight are A4 in PDF points.
	DefaultPageWidth  = 595.28
	DefaultPageHeight = 841.89

	// DefaultMargin is the outer page margin in points.
	DefaultMargin = 36.0

	// DefaultPadding is the gap between grid cells in points.
	DefaultPadding = 12.0

	// DefaultLabelBand is the text band reserved under each cell for the
	// serial number label.
	DefaultLabelBand = 14.0

	// DefaultMinCols and DefaultMinRows are the smallest grid the fit
	// must accommodate.
	DefaultMinCols = 3
	DefaultMinRows = 3

	// DefaultChunkSize is the number of pieces processed per Step call.
	DefaultChunkSize = 100
)

// Job kinds, as reported to observability hooks and logs.
const (
	KindDocuments = "documents"
	KindArchives  = "archives"
)

// Format constants for archive entry formats.
const (
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported archive entry formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPDF: true,
}

var (
	// ErrJobActive is returned when a new job is requested while another
	// one is still unfinished.
	ErrJobActive = errors.New("an export job is already active")

	// ErrPageTooSmall is returned when the requested minimum grid cannot
	// fit on the page at any positive scale.
	ErrPageTooSmall = errors.New("page cannot fit the requested grid")
)

// ValidateFormat checks that an archive entry format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, pdf)", format)
	}
	return nil
}

// PageConfig describes the printable page and the requested grid.
type PageConfig struct {
	Width     float64 `json:"width,omitempty" toml:"width"`
	Height    float64 `json:"height,omitempty" toml:"height"`
	Margin    float64 `json:"margin,omitempty" toml:"margin"`
	Padding   float64 `json:"padding,omitempty" toml:"padding"`
	LabelBand float64 `json:"label_band,omitempty" toml:"label_band"`
	MinCols   int     `json:"min_cols,omitempty" toml:"min_cols"`
	MinRows   int     `json:"min_rows,omitempty" toml:"min_rows"`
}

// Limits bound a job. Zero values mean unlimited.
type Limits struct {
	// MaxItems caps the total number of pieces exported.
	MaxItems uint64 `json:"max_items,omitempty" toml:"max_items"`

	// MaxPerDocument caps the pieces per document, or the entries per
	// archive in archive mode.
	MaxPerDocument int `json:"max_per_document,omitempty" toml:"max_per_document"`

	// MaxPages caps the pages per document.
	MaxPages int `json:"max_pages,omitempty" toml:"max_pages"`
}

// Options contains all configuration for an export job.
// This struct supports JSON serialization for config files.
type Options struct {
	// Space selects the serial number space being exported.
	Space serial.Space `json:"space"`

	// Piece configures the geometry builder.
	Piece piece.Options `json:"piece"`

	// Page configures page geometry for document jobs.
	Page PageConfig `json:"page"`

	// Selection restricts the export to a subset of the space. The zero
	// value exports the whole space.
	Selection selection.Selection `json:"selection,omitempty"`

	// Limits bound the job.
	Limits Limits `json:"limits,omitempty"`

	// ChunkSize is the number of pieces processed per Step call.
	ChunkSize int `json:"chunk_size,omitempty"`

	// Format selects the archive entry format (archive jobs only).
	Format string `json:"format,omitempty"`

	// Title is stamped into document metadata.
	Title string `json:"title,omitempty"`

	// DrawBounds paints each piece's bounding box behind it.
	DrawBounds bool `json:"draw_bounds,omitempty"`

	// DryRun records drawing commands as JSON instead of encoding real
	// documents. Output names switch to a .json extension.
	DryRun bool `json:"dry_run,omitempty"`

	// Runtime options (not serialized)
	Logger     *log.Logger          `json:"-"`
	OnProgress func(Progress)       `json:"-"`
	OnDocument func(Document) error `json:"-"`
	OnFinish   func(Summary)        `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Progress is a snapshot of a running job, passed to OnProgress after
// every chunk. Page counters stay zero in archive mode.
type Progress struct {
	ItemsDone      uint64
	ItemsTotal     uint64
	Page           int
	PagesTotal     int
	Document       int
	DocumentsTotal int
}

// Document is one finalized output file. Ownership of Data transfers to
// the OnDocument callback; the job never touches it again.
type Document struct {
	Name  string
	Data  []byte
	Pages int
	Items int
}

// Summary describes a completed job, passed to OnFinish exactly once.
type Summary struct {
	Items     uint64
	Pages     int
	Documents int

	// Limited reports that the item limit cut the export short of the
	// full selection.
	Limited bool

	Duration time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Space.Validate(); err != nil {
		return fmt.Errorf("space: %w", err)
	}
	o.SetPageDefaults()
	if o.Page.Width <= 0 || o.Page.Height <= 0 {
		return fmt.Errorf("page size must be positive")
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SetPageDefaults fills in zero page fields.
func (o *Options) SetPageDefaults() {
	if o.Page.Width == 0 {
		o.Page.Width = DefaultPageWidth
	}
	if o.Page.Height == 0 {
		o.Page.Height = DefaultPageHeight
	}
	if o.Page.Margin == 0 {
		o.Page.Margin = DefaultMargin
	}
	if o.Page.Padding == 0 {
		o.Page.Padding = DefaultPadding
	}
	if o.Page.LabelBand == 0 {
		o.Page.LabelBand = DefaultLabelBand
	}
	if o.Page.MinCols < 1 {
		o.Page.MinCols = DefaultMinCols
	}
	if o.Page.MinRows < 1 {
		o.Page.MinRows = DefaultMinRows
	}
}
