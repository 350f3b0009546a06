package cli

import (
	"fmt"

	"github.com/jbeda/geom"
	"github.com/spf13/cobra"

	"github.com/stevenrrose/Shim-Index/pkg/piece"
	"github.com/stevenrrose/Shim-Index/pkg/render"
	"github.com/stevenrrose/Shim-Index/pkg/serial"
	"github.com/stevenrrose/Shim-Index/pkg/tiling"
)

// Piece output formats.
const (
	formatJSON = "json"
	formatSVG  = tiling.FormatSVG
	formatPDF  = tiling.FormatPDF
)

// pieceMargin is the whitespace around a single rendered piece, in piece
// units.
const pieceMargin = 10.0

// pieceOpts holds the command-line flags for the piece command.
type pieceOpts struct {
	format string // output format: json, svg, pdf
	output string // output file path (stdout if empty)
	bounds bool   // draw the bounding box behind the shims
}

// pieceCommand creates the piece command for building a single piece.
func (c *CLI) pieceCommand() *cobra.Command {
	var pf pieceFlags
	opts := pieceOpts{format: formatJSON}

	cmd := &cobra.Command{
		Use:   "piece <serial>",
		Short: "Build one piece and write its geometry or a drawing",
		Long: `Build the piece for one serial number.

The json format writes the full geometry (slots, shims, bounds); svg and
pdf write a single-page drawing sized to the piece.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePieceFormat(opts.format); err != nil {
				return err
			}
			return c.runPiece(args[0], c.resolvePiece(cmd, pf), opts)
		},
	}

	addPieceFlags(cmd, &pf)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json (default), svg, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.bounds, "bounds", false, "draw the bounding box behind the shims")

	return cmd
}

// validatePieceFormat checks that the requested piece format is supported.
func validatePieceFormat(f string) error {
	switch f {
	case formatJSON, formatSVG, formatPDF:
		return nil
	}
	return fmt.Errorf("invalid format: %q (must be 'json', 'svg', or 'pdf')", f)
}

func (c *CLI) runPiece(raw string, po piece.Options, opts pieceOpts) error {
	n, err := serial.Parse(raw)
	if err != nil {
		return err
	}
	p := piece.Build(n, po)
	c.Logger.Debug("built piece",
		"serial", string(n),
		"slots", len(p.Slots),
		"height", p.Height,
		"width", p.Bounds.Width(),
	)

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if opts.format == formatJSON {
		if err := piece.WriteJSON(p, out); err != nil {
			return err
		}
	} else {
		data, err := renderPiece(p, opts.format, string(n), opts.bounds)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	}

	if opts.output != "" {
		printSuccess("Built %s: %d slots, %.0fx%.0f units",
			StyleHighlight.Render(string(n)), len(p.Slots), p.Bounds.Width(), p.Bounds.Height())
		printFile(opts.output)
	}
	return nil
}

// renderPiece draws p alone on a page sized to its bounds plus a margin.
func renderPiece(p piece.Piece, format, title string, drawBounds bool) ([]byte, error) {
	w := p.Bounds.Width() + 2*pieceMargin
	h := p.Bounds.Height() + 2*pieceMargin

	var r render.Renderer
	switch format {
	case formatPDF:
		r = render.NewPDF(w, h, render.WithTitle(title), render.WithCreator(appName))
	default:
		r = render.NewSVG(w, h, render.WithTitle(title))
	}
	r.BeginPage()
	tiling.DrawPiece(r, p, geom.Coord{X: pieceMargin, Y: pieceMargin}, 1, drawBounds)

	data, err := r.Finalize()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
