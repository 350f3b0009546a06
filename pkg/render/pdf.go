package render

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
	"time"

	"github.com/jbeda/geom"
)

const pdfVersion = "1.4"

// PDF renders pages into a self-contained PDF document: object table,
// page tree, one built-in Helvetica font, compressed content streams,
// cross-reference table. No external converters are involved.
//
// Drawing arrives in y-down page coordinates; PDF user space grows upward,
// so every y is flipped against the page height on write.
type PDF struct {
	width  float64
	height float64
	cfg    config
	page   strings.Builder
	pages  []string
	open   bool
	done   bool
}

// NewPDF returns a renderer producing width x height point pages.
func NewPDF(width, height float64, opts ...Option) *PDF {
	return &PDF{width: width, height: height, cfg: newConfig(opts...)}
}

// BeginPage closes the page in progress, if any, and opens a fresh one.
func (p *PDF) BeginPage() {
	if p.done {
		return
	}
	p.flushPage()
	p.open = true
}

// DrawPolygon paints a closed polygon.
func (p *PDF) DrawPolygon(pts []geom.Coord, st Style) {
	if p.done || len(pts) < 2 {
		return
	}
	p.ensurePage()
	st = st.normalize()
	p.setPaint(st)
	for i, pt := range pts {
		op := "l"
		if i == 0 {
			op = "m"
		}
		fmt.Fprintf(&p.page, "%.3f %.3f %s\n", pt.X, p.height-pt.Y, op)
	}
	fmt.Fprintf(&p.page, "h %s\n", paintOp(st))
}

// DrawRect paints an axis-aligned rectangle.
func (p *PDF) DrawRect(r geom.Rect, st Style) {
	if p.done {
		return
	}
	p.ensurePage()
	st = st.normalize()
	p.setPaint(st)
	// The re operator takes the lower-left corner; after the flip that is
	// the rectangle's Max.Y edge.
	fmt.Fprintf(&p.page, "%.3f %.3f %.3f %.3f re %s\n",
		r.Min.X, p.height-r.Max.Y, r.Width(), r.Height(), paintOp(st))
}

// DrawText paints a single line with its baseline starting at the given
// point, using the built-in Helvetica font.
func (p *PDF) DrawText(text string, at geom.Coord, st Style) {
	if p.done || text == "" {
		return
	}
	p.ensurePage()
	st = st.normalize()
	ink := st.Fill
	if !st.Filled {
		ink = st.Stroke
	}
	fmt.Fprintf(&p.page, "BT\n/F1 %.3f Tf\n%s rg\n%.3f %.3f Td\n(%s) Tj\nET\n",
		st.FontSize, ink, at.X, p.height-at.Y, escapeText(text))
}

// Finalize assembles the document and returns its bytes. The renderer is
// unusable afterwards.
func (p *PDF) Finalize() ([]byte, error) {
	if p.done {
		return nil, ErrFinalized
	}
	p.done = true
	p.flushPage()
	if len(p.pages) == 0 {
		return nil, ErrNoPages
	}

	// Objects 1-3 are fixed: catalog, page tree, font. Each page follows
	// as a stream/page pair, the info dictionary comes last.
	kids := make([]string, len(p.pages))
	for i := range p.pages {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(p.pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for _, content := range p.pages {
		stream, filter := p.encodeStream(content)
		objects = append(objects,
			fmt.Sprintf("<< /Length %d%s >>\nstream\n%sendstream", len(stream), filter, stream),
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>",
				p.width, p.height, len(objects)+1),
		)
	}
	objects = append(objects, p.infoDict())

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%PDF-%s\n%%\xE2\xE3\xCF\xD3\n", pdfVersion)
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, len(objects), xrefPos)
	return buf.Bytes(), nil
}

func (p *PDF) ensurePage() {
	if !p.open {
		p.open = true
	}
}

func (p *PDF) flushPage() {
	if p.open {
		p.pages = append(p.pages, p.page.String())
		p.page.Reset()
		p.open = false
	}
}

func (p *PDF) setPaint(st Style) {
	if st.Filled {
		fmt.Fprintf(&p.page, "%s rg\n", st.Fill)
	}
	if st.Stroked {
		fmt.Fprintf(&p.page, "%s RG\n%.3f w\n", st.Stroke, st.LineWidth)
	}
}

func paintOp(st Style) string {
	switch {
	case st.Filled && st.Stroked:
		return "B"
	case st.Filled:
		return "f"
	default:
		return "S"
	}
}

func (p *PDF) encodeStream(content string) (string, string) {
	if !p.cfg.compress {
		return content, ""
	}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write([]byte(content))
	zw.Close()
	return buf.String(), " /Filter /FlateDecode"
}

func (p *PDF) infoDict() string {
	var sb strings.Builder
	sb.WriteString("<<\n")
	if p.cfg.title != "" {
		fmt.Fprintf(&sb, "/Title (%s)\n", escapeText(p.cfg.title))
	}
	if p.cfg.creator != "" {
		fmt.Fprintf(&sb, "/Creator (%s)\n", escapeText(p.cfg.creator))
	}
	sb.WriteString("/Producer (Shim-Index)\n")
	fmt.Fprintf(&sb, "/CreationDate (%s)\n", time.Now().UTC().Format("D:20060102150405Z"))
	sb.WriteString(">>")
	return sb.String()
}

// escapeText escapes the PDF string delimiters.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	return s
}
