package render

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jbeda/geom"
)

func TestRecorderCapturesOps(t *testing.T) {
	r := NewRecorder()
	r.DrawPolygon([]geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, Style{})
	r.DrawText("+A", geom.Coord{X: 2, Y: 3}, Style{})
	r.BeginPage()
	r.DrawRect(geom.Rect{Max: geom.Coord{X: 4, Y: 4}}, Style{Filled: true})

	if len(r.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(r.Pages))
	}
	if len(r.Pages[0]) != 2 {
		t.Fatalf("page 1 ops = %d, want 2", len(r.Pages[0]))
	}
	if len(r.Pages[1]) != 1 {
		t.Fatalf("page 2 ops = %d, want 1", len(r.Pages[1]))
	}

	if got := r.Pages[0][0].Kind; got != OpPolygon {
		t.Errorf("op kind = %q, want %q", got, OpPolygon)
	}
	if got := r.Pages[0][1]; got.Kind != OpText || got.Text != "+A" {
		t.Errorf("op = %+v, want text op %q", got, "+A")
	}
	if got := r.Pages[1][0]; got.Kind != OpRect || got.Rect == nil {
		t.Errorf("op = %+v, want rect op", got)
	}
}

func TestRecorderClonesPoints(t *testing.T) {
	pts := []geom.Coord{{X: 1, Y: 2}, {X: 3, Y: 4}}
	r := NewRecorder()
	r.DrawPolygon(pts, Style{})

	pts[0].X = 99

	if got := r.Pages[0][0].Points[0].X; got != 1 {
		t.Errorf("recorded point mutated to %v, want 1", got)
	}
}

func TestRecorderNormalizesStyles(t *testing.T) {
	r := NewRecorder()
	r.DrawRect(geom.Rect{Max: geom.Coord{X: 1, Y: 1}}, Style{})

	st := r.Pages[0][0].Style
	if !st.Stroked || st.LineWidth != 1 {
		t.Errorf("style = %+v, want normalized stroke defaults", st)
	}
}

func TestRecorderJSON(t *testing.T) {
	r := NewRecorder()
	r.DrawText("hello", geom.Coord{X: 1, Y: 2}, Style{})

	data, err := r.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	var pages [][]Op
	if err := json.Unmarshal(data, &pages); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(pages) != 1 || len(pages[0]) != 1 {
		t.Fatalf("decoded shape = %d pages, want 1 page with 1 op", len(pages))
	}
	if op := pages[0][0]; op.Kind != OpText || op.Text != "hello" || op.At == nil {
		t.Errorf("decoded op = %+v, want text op %q", op, "hello")
	}
}

func TestRecorderNoPages(t *testing.T) {
	r := NewRecorder()
	if _, err := r.Finalize(); !errors.Is(err, ErrNoPages) {
		t.Errorf("Finalize() error = %v, want ErrNoPages", err)
	}
}

func TestRecorderFinalizeTwice(t *testing.T) {
	r := NewRecorder()
	r.DrawRect(geom.Rect{Max: geom.Coord{X: 1, Y: 1}}, Style{})
	if _, err := r.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if _, err := r.Finalize(); !errors.Is(err, ErrFinalized) {
		t.Errorf("second Finalize() error = %v, want ErrFinalized", err)
	}
}
