package render

import (
	"errors"
	"fmt"

	"github.com/jbeda/geom"
)

// Sentinel errors shared by the document backends.
var (
	// ErrFinalized is returned when a renderer is used after Finalize.
	ErrFinalized = errors.New("document already finalized")

	// ErrNoPages is returned when Finalize is called before anything was
	// drawn.
	ErrNoPages = errors.New("document has no pages")

	// ErrSinglePage is returned by single-page backends on a second
	// BeginPage.
	ErrSinglePage = errors.New("backend supports a single page")
)

// Renderer is the capability set the tiling engine draws against. All
// coordinates are y-down page units. BeginPage opens a fresh page;
// implementations open the first page implicitly on the first drawing
// call. Finalize closes the document and returns its encoded bytes; the
// renderer must not be used afterwards.
type Renderer interface {
	BeginPage()
	DrawPolygon(pts []geom.Coord, st Style)
	DrawRect(r geom.Rect, st Style)
	DrawText(text string, at geom.Coord, st Style)
	Finalize() ([]byte, error)
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Hex returns the #rrggbb form used by SVG attributes.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// String returns the space-separated operand form used by PDF operators.
func (c Color) String() string {
	return fmt.Sprintf("%.3f %.3f %.3f", c.R, c.G, c.B)
}

func channel(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int(v*255 + 0.5)
}

// Style selects how a drawing operation is painted. The zero value paints
// a hairline black stroke; text always paints with the fill color.
type Style struct {
	Stroked   bool    `json:"stroked"`
	Filled    bool    `json:"filled"`
	Stroke    Color   `json:"stroke"`
	Fill      Color   `json:"fill"`
	LineWidth float64 `json:"lineWidth"`
	FontSize  float64 `json:"fontSize"`
}

// normalize resolves the zero-value defaults so every backend paints
// identically.
func (s Style) normalize() Style {
	if !s.Stroked && !s.Filled {
		s.Stroked = true
	}
	if s.LineWidth <= 0 {
		s.LineWidth = 1
	}
	if s.FontSize <= 0 {
		s.FontSize = 10
	}
	return s
}

// Option adjusts backend construction.
type Option func(*config)

type config struct {
	title    string
	creator  string
	compress bool
}

func newConfig(opts ...Option) config {
	cfg := config{compress: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithTitle sets the document title embedded in backends that carry
// metadata.
func WithTitle(title string) Option { return func(c *config) { c.title = title } }

// WithCreator sets the creator string embedded in backends that carry
// metadata.
func WithCreator(creator string) Option { return func(c *config) { c.creator = creator } }

// WithCompression toggles content-stream compression on backends that
// support it. Enabled by default; tests disable it to inspect streams.
func WithCompression(enabled bool) Option { return func(c *config) { c.compress = enabled } }
