package render

import (
	"encoding/json"

	"github.com/jbeda/geom"
)

// Op kinds captured by the Recorder.
const (
	OpPolygon = "polygon"
	OpRect    = "rect"
	OpText    = "text"
)

// Op is one recorded drawing command.
type Op struct {
	Kind   string       `json:"kind"`
	Points []geom.Coord `json:"points,omitempty"`
	Rect   *geom.Rect   `json:"rect,omitempty"`
	Text   string       `json:"text,omitempty"`
	At     *geom.Coord  `json:"at,omitempty"`
	Style  Style        `json:"style"`
}

// Recorder captures drawing commands instead of producing a document.
// Finalize serializes the captured pages as indented JSON, which makes dry
// runs and golden tests cheap without parsing PDF or SVG output.
type Recorder struct {
	Pages [][]Op

	open bool
	done bool
}

// NewRecorder returns an empty recording renderer.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) BeginPage() {
	if r.done {
		return
	}
	r.Pages = append(r.Pages, nil)
	r.open = true
}

func (r *Recorder) DrawPolygon(pts []geom.Coord, st Style) {
	if r.done || len(pts) < 2 {
		return
	}
	r.ensurePage()
	cp := make([]geom.Coord, len(pts))
	copy(cp, pts)
	r.push(Op{Kind: OpPolygon, Points: cp, Style: st.normalize()})
}

func (r *Recorder) DrawRect(rect geom.Rect, st Style) {
	if r.done {
		return
	}
	r.ensurePage()
	r.push(Op{Kind: OpRect, Rect: &rect, Style: st.normalize()})
}

func (r *Recorder) DrawText(text string, at geom.Coord, st Style) {
	if r.done || text == "" {
		return
	}
	r.ensurePage()
	r.push(Op{Kind: OpText, Text: text, At: &at, Style: st.normalize()})
}

// Finalize returns the recorded pages as indented JSON.
func (r *Recorder) Finalize() ([]byte, error) {
	if r.done {
		return nil, ErrFinalized
	}
	r.done = true
	if len(r.Pages) == 0 {
		return nil, ErrNoPages
	}
	return json.MarshalIndent(r.Pages, "", "  ")
}

func (r *Recorder) ensurePage() {
	if !r.open {
		r.BeginPage()
	}
}

func (r *Recorder) push(op Op) {
	last := len(r.Pages) - 1
	r.Pages[last] = append(r.Pages[last], op)
}
