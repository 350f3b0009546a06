package piece

import (
	"github.com/jbeda/geom"

	"github.com/stevenrrose/Shim-Index/pkg/serial"
)

// Fixed proportions of the shim outline, in piece units.
const (
	// SideLength is the length of a shim's long edge.
	SideLength = 50.0

	// TipRatio is the width of a trapezoidal shim's tip relative to its
	// base. It places the virtual rotation centre at
	// TipRatio·SideLength/(1−TipRatio) behind the tip.
	TipRatio = 0.25

	// NegativeSpace is the horizontal gap between consecutive slots.
	NegativeSpace = 6.0
)

// Options selects the shim outline and the height-normalization mode.
// The zero value (uncropped, triangular) matches the classic shim shape.
type Options struct {
	Cropped     bool `json:"cropped" toml:"cropped"`         // trim shims to the common inner span
	Trapezoidal bool `json:"trapezoidal" toml:"trapezoidal"` // four-sided shims with a blunt tip
}

// Shim is one wedge polygon: three vertices for triangular shims, four for
// trapezoidal ones, in drawing order.
type Shim []geom.Coord

// Slot is a fan of same-orientation shims built from one serial letter.
type Slot struct {
	Up    bool   `json:"up"`    // tip on the top edge, fan opening downward
	Count int    `json:"count"` // number of shims, 1..26
	Shims []Shim `json:"shims"`
}

// Piece is the full composition for one serial number.
type Piece struct {
	Serial serial.Number `json:"serial"`
	Slots  []Slot        `json:"slots"`
	Height float64       `json:"height"` // normalized band height
	Bounds geom.Rect     `json:"bounds"` // covers every shim vertex
}

// Empty reports whether p carries no geometry, the defined result of
// building a malformed serial number.
func (p Piece) Empty() bool {
	return len(p.Slots) == 0
}

// Vertices calls fn for every vertex of every shim, in drawing order.
func (p Piece) Vertices(fn func(geom.Coord)) {
	for _, slot := range p.Slots {
		for _, shim := range slot.Shims {
			for _, v := range shim {
				fn(v)
			}
		}
	}
}
