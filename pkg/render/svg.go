package render

import (
	"bytes"
	"fmt"

	"github.com/jbeda/geom"
)

// SVG renders one page into an SVG document. SVG user space is already
// y-down, so coordinates pass through unchanged. A second BeginPage makes
// Finalize fail with ErrSinglePage; multi-page exports belong to the PDF
// backend.
type SVG struct {
	width  float64
	height float64
	cfg    config
	body   bytes.Buffer
	open   bool
	done   bool
	err    error
}

// NewSVG returns a renderer producing one width x height unit page.
func NewSVG(width, height float64, opts ...Option) *SVG {
	return &SVG{width: width, height: height, cfg: newConfig(opts...)}
}

// BeginPage opens the single page. Calling it again poisons the document.
func (s *SVG) BeginPage() {
	if s.done {
		return
	}
	if s.open {
		s.err = ErrSinglePage
		return
	}
	s.open = true
}

// DrawPolygon appends a closed polygon element.
func (s *SVG) DrawPolygon(pts []geom.Coord, st Style) {
	if s.done || len(pts) < 2 {
		return
	}
	s.BeginPage()
	var points bytes.Buffer
	for i, pt := range pts {
		if i > 0 {
			points.WriteByte(' ')
		}
		fmt.Fprintf(&points, "%.3f,%.3f", pt.X, pt.Y)
	}
	fmt.Fprintf(&s.body, "  <polygon points=%q %s/>\n", points.String(), paintAttrs(st))
}

// DrawRect appends a rectangle element.
func (s *SVG) DrawRect(r geom.Rect, st Style) {
	if s.done {
		return
	}
	s.BeginPage()
	fmt.Fprintf(&s.body, "  <rect x=\"%.3f\" y=\"%.3f\" width=\"%.3f\" height=\"%.3f\" %s/>\n",
		r.Min.X, r.Min.Y, r.Width(), r.Height(), paintAttrs(st))
}

// DrawText appends a text element with its baseline starting at the given
// point.
func (s *SVG) DrawText(text string, at geom.Coord, st Style) {
	if s.done || text == "" {
		return
	}
	s.BeginPage()
	st = st.normalize()
	ink := st.Fill
	if !st.Filled {
		ink = st.Stroke
	}
	fmt.Fprintf(&s.body, "  <text x=\"%.3f\" y=\"%.3f\" font-family=\"Helvetica, sans-serif\" font-size=\"%.3f\" fill=\"%s\">%s</text>\n",
		at.X, at.Y, st.FontSize, ink.Hex(), escapeXML(text))
}

// Finalize wraps the page in the svg envelope and returns its bytes.
func (s *SVG) Finalize() ([]byte, error) {
	if s.done {
		return nil, ErrFinalized
	}
	s.done = true
	if s.err != nil {
		return nil, s.err
	}
	if !s.open {
		return nil, ErrNoPages
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %.3f %.3f\" width=\"%.0f\" height=\"%.0f\">\n",
		s.width, s.height, s.width, s.height)
	if s.cfg.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.cfg.title))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func paintAttrs(st Style) string {
	st = st.normalize()
	fill := "none"
	if st.Filled {
		fill = st.Fill.Hex()
	}
	if !st.Stroked {
		return fmt.Sprintf("fill=%q", fill)
	}
	return fmt.Sprintf("fill=%q stroke=%q stroke-width=\"%.3f\"", fill, st.Stroke.Hex(), st.LineWidth)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
