package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/jbeda/geom"
)

func TestSVGDocument(t *testing.T) {
	s := NewSVG(100, 50, WithTitle("shim piece"))
	s.DrawPolygon([]geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 5}}, Style{})
	s.DrawRect(geom.Rect{Min: geom.Coord{X: 10, Y: 20}, Max: geom.Coord{X: 30, Y: 45}}, Style{Filled: true, Fill: Color{R: 1}})

	data, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	doc := string(data)

	if !strings.HasPrefix(doc, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.000 50.000"`) {
		t.Errorf("unexpected document prefix: %q", doc[:60])
	}
	if !strings.Contains(doc, "<title>shim piece</title>") {
		t.Error("document should carry the title element")
	}
	if !strings.Contains(doc, `<polygon points="0.000,0.000 10.000,0.000 5.000,5.000" fill="none" stroke="#000000" stroke-width="1.000"/>`) {
		t.Error("polygon element missing or malformed")
	}
	if !strings.Contains(doc, `<rect x="10.000" y="20.000" width="20.000" height="25.000" fill="#ff0000"/>`) {
		t.Error("rect element missing or malformed")
	}
	if !strings.HasSuffix(doc, "</svg>\n") {
		t.Error("document should end with the closing svg tag")
	}
}

func TestSVGText(t *testing.T) {
	s := NewSVG(100, 50)
	s.DrawText("a<b&c", geom.Coord{X: 5, Y: 40}, Style{FontSize: 8, Filled: true, Fill: Color{B: 1}})

	data, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	doc := string(data)

	if !strings.Contains(doc, `font-size="8.000"`) {
		t.Error("text should carry the requested font size")
	}
	if !strings.Contains(doc, `fill="#0000ff"`) {
		t.Error("text should be painted with the fill colour")
	}
	if !strings.Contains(doc, ">a&lt;b&amp;c</text>") {
		t.Error("text content should be XML-escaped")
	}
}

func TestSVGSinglePageOnly(t *testing.T) {
	s := NewSVG(100, 50)
	s.BeginPage()
	s.DrawRect(geom.Rect{Max: geom.Coord{X: 1, Y: 1}}, Style{})
	s.BeginPage()

	if _, err := s.Finalize(); !errors.Is(err, ErrSinglePage) {
		t.Errorf("Finalize() error = %v, want ErrSinglePage", err)
	}
}

func TestSVGNoPages(t *testing.T) {
	s := NewSVG(100, 50)
	if _, err := s.Finalize(); !errors.Is(err, ErrNoPages) {
		t.Errorf("Finalize() error = %v, want ErrNoPages", err)
	}
}

func TestSVGFinalizeTwice(t *testing.T) {
	s := NewSVG(100, 50)
	s.DrawRect(geom.Rect{Max: geom.Coord{X: 1, Y: 1}}, Style{})
	if _, err := s.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if _, err := s.Finalize(); !errors.Is(err, ErrFinalized) {
		t.Errorf("second Finalize() error = %v, want ErrFinalized", err)
	}
}

func TestEscapeXML(t *testing.T) {
	if got, want := escapeXML(`<a href="x">&`), "&lt;a href=&quot;x&quot;&gt;&amp;"; got != want {
		t.Errorf("escapeXML() = %q, want %q", got, want)
	}
}
