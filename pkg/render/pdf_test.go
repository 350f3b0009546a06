package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/jbeda/geom"
)

func TestPDFSinglePage(t *testing.T) {
	p := NewPDF(100, 200, WithCompression(false))
	p.DrawPolygon([]geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 5}}, Style{})

	data, err := p.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	doc := string(data)

	if !strings.HasPrefix(doc, "%PDF-1.4\n") {
		t.Errorf("document should start with %%PDF-1.4 header, got %q", doc[:16])
	}
	if !strings.Contains(doc, "/Count 1") {
		t.Error("page tree should count one page")
	}
	if !strings.Contains(doc, "/MediaBox [0 0 100.00 200.00]") {
		t.Error("page should carry the requested media box")
	}
	if !strings.Contains(doc, "startxref") {
		t.Error("document should carry a startxref marker")
	}
	if !strings.HasSuffix(doc, "%%EOF\n") {
		t.Errorf("document should end with %%%%EOF")
	}
	if !strings.Contains(doc, "/Root 1 0 R") {
		t.Error("trailer should point at the catalog")
	}
}

func TestPDFFlipsY(t *testing.T) {
	p := NewPDF(100, 200, WithCompression(false))
	p.DrawRect(geom.Rect{Min: geom.Coord{X: 10, Y: 20}, Max: geom.Coord{X: 30, Y: 50}}, Style{})

	data, err := p.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	// Lower-left corner of the rect in PDF space is height-Max.Y = 150.
	if want := "10.000 150.000 20.000 30.000 re S"; !strings.Contains(string(data), want) {
		t.Errorf("stream should contain %q", want)
	}
}

func TestPDFPolygonOperators(t *testing.T) {
	p := NewPDF(100, 100, WithCompression(false))
	p.DrawPolygon([]geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 5}}, Style{})

	data, err := p.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	doc := string(data)

	for _, want := range []string{
		"0.000 100.000 m",
		"10.000 100.000 l",
		"5.000 95.000 l",
		"h S",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("stream should contain %q", want)
		}
	}
}

func TestPDFMultiPage(t *testing.T) {
	p := NewPDF(100, 100)
	p.DrawRect(geom.Rect{Max: geom.Coord{X: 10, Y: 10}}, Style{})
	p.BeginPage()
	p.DrawRect(geom.Rect{Max: geom.Coord{X: 20, Y: 20}}, Style{})

	data, err := p.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	doc := string(data)

	if !strings.Contains(doc, "/Count 2") {
		t.Error("page tree should count two pages")
	}
	if !strings.Contains(doc, "/Kids [5 0 R 7 0 R]") {
		t.Error("page tree should list both page objects")
	}
}

func TestPDFCompression(t *testing.T) {
	draw := func(p *PDF) {
		p.DrawRect(geom.Rect{Max: geom.Coord{X: 10, Y: 10}}, Style{})
	}

	p := NewPDF(100, 100)
	draw(p)
	data, err := p.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if !strings.Contains(string(data), "/Filter /FlateDecode") {
		t.Error("compressed document should declare FlateDecode")
	}

	p = NewPDF(100, 100, WithCompression(false))
	draw(p)
	data, err = p.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if strings.Contains(string(data), "/Filter /FlateDecode") {
		t.Error("uncompressed document should not declare FlateDecode")
	}
}

func TestPDFText(t *testing.T) {
	p := NewPDF(100, 100, WithCompression(false))
	p.DrawText("+AB (up)", geom.Coord{X: 5, Y: 90}, Style{FontSize: 12})

	data, err := p.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	doc := string(data)

	if !strings.Contains(doc, "/F1 12.000 Tf") {
		t.Error("text should select Helvetica at the requested size")
	}
	if !strings.Contains(doc, `(+AB \(up\)) Tj`) {
		t.Error("text parentheses should be escaped")
	}
	if !strings.Contains(doc, "5.000 10.000 Td") {
		t.Error("text origin should be flipped into PDF space")
	}
}

func TestPDFMetadata(t *testing.T) {
	p := NewPDF(100, 100, WithTitle("pieces"), WithCreator("shimindex"))
	p.DrawRect(geom.Rect{Max: geom.Coord{X: 1, Y: 1}}, Style{})

	data, err := p.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	doc := string(data)

	if !strings.Contains(doc, "/Title (pieces)") {
		t.Error("info dictionary should carry the title")
	}
	if !strings.Contains(doc, "/Creator (shimindex)") {
		t.Error("info dictionary should carry the creator")
	}
	if !strings.Contains(doc, "/Producer (Shim-Index)") {
		t.Error("info dictionary should carry the producer")
	}
}

func TestPDFNoPages(t *testing.T) {
	p := NewPDF(100, 100)
	if _, err := p.Finalize(); !errors.Is(err, ErrNoPages) {
		t.Errorf("Finalize() error = %v, want ErrNoPages", err)
	}
}

func TestPDFFinalizeTwice(t *testing.T) {
	p := NewPDF(100, 100)
	p.DrawRect(geom.Rect{Max: geom.Coord{X: 1, Y: 1}}, Style{})
	if _, err := p.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if _, err := p.Finalize(); !errors.Is(err, ErrFinalized) {
		t.Errorf("second Finalize() error = %v, want ErrFinalized", err)
	}
}

func TestPDFIgnoresDrawsAfterFinalize(t *testing.T) {
	p := NewPDF(100, 100)
	p.DrawRect(geom.Rect{Max: geom.Coord{X: 1, Y: 1}}, Style{})
	if _, err := p.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	p.DrawRect(geom.Rect{Max: geom.Coord{X: 2, Y: 2}}, Style{})
	p.BeginPage()
	if len(p.pages) != 1 {
		t.Errorf("pages = %d, want 1 after finalize", len(p.pages))
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"(parens)", `\(parens\)`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeText(tt.in); got != tt.want {
			t.Errorf("escapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
