package piece

import (
	"math"
	"strings"

	"github.com/jbeda/geom"

	"github.com/stevenrrose/Shim-Index/pkg/serial"
)

// outline carries the derived constants of the shim shape for one build.
type outline struct {
	tipOff  float64 // rotation centre to tip edge
	rBase   float64 // rotation centre to base edge
	step    float64 // fan angle between adjacent shims
	cropped bool
}

func shape(opts Options) outline {
	o := outline{rBase: SideLength, cropped: opts.Cropped}
	if opts.Trapezoidal {
		o.tipOff = TipRatio * SideLength / (1 - TipRatio)
		o.rBase = SideLength + o.tipOff
	}
	o.step = math.Asin(0.5 / o.rBase)
	return o
}

// innerSpan returns the tip-to-base extent of a count-shim fan measured
// straight across the band: the fan's shallowest base vertex.
func (o outline) innerSpan(count int) float64 {
	return o.rBase*math.Cos(float64(count)*o.step) - o.tipOff
}

// Build computes the piece for a serial number. It is deterministic and
// never fails: malformed serial numbers yield the empty Piece.
func Build(n serial.Number, opts Options) Piece {
	counts := n.Counts()
	if counts == nil {
		return Piece{Serial: n}
	}
	o := shape(opts)

	// Uncropped pieces align every slot's deepest edge to the full side
	// length; cropped pieces shrink the band to the shortest inner span.
	height := SideLength
	if o.cropped {
		height = o.innerSpan(counts[0])
		for _, c := range counts[1:] {
			if span := o.innerSpan(c); span < height {
				height = span
			}
		}
	}

	up := n.Sign() == '+'
	x := 0.0
	slots := make([]Slot, len(counts))
	bounds := geom.NilRect()
	for k, c := range counts {
		slots[k] = o.buildSlot(c, up, x, height)
		for _, sh := range slots[k].Shims {
			for _, v := range sh {
				bounds.ExpandToContainCoord(v)
			}
		}
		x = o.trailX(c, up, x, height) + NegativeSpace
		up = !up
	}
	return Piece{Serial: n, Slots: slots, Height: height, Bounds: bounds}
}

// anchor returns the rotation centre of a slot whose leading edge sits at x0.
func (o outline) anchor(up bool, x0, height float64) geom.Coord {
	if up {
		return geom.Coord{X: x0, Y: -o.tipOff}
	}
	return geom.Coord{X: x0, Y: height + o.tipOff}
}

// ray returns the unit direction from the rotation centre at fan angle a.
// Upward slots open toward +y (down the page), downward slots toward -y.
func ray(a float64, up bool) geom.Coord {
	d := geom.Coord{X: math.Sin(a), Y: math.Cos(a)}
	if !up {
		d.Y = -d.Y
	}
	return d
}

func (o outline) buildSlot(count int, up bool, x0, height float64) Slot {
	centre := o.anchor(up, x0, height)
	shims := make([]Shim, count)
	for i := range shims {
		d0 := ray(float64(i)*o.step, up)
		d1 := ray(float64(i+1)*o.step, up)
		var sh Shim
		if o.tipOff > 0 {
			sh = Shim{
				centre.Plus(d0.Times(o.tipOff)),
				centre.Plus(d0.Times(o.rBase)),
				centre.Plus(d1.Times(o.rBase)),
				centre.Plus(d1.Times(o.tipOff)),
			}
		} else {
			sh = Shim{centre, centre.Plus(d0.Times(o.rBase)), centre.Plus(d1.Times(o.rBase))}
		}
		if o.cropped {
			for j, v := range sh {
				sh[j] = clampToBand(centre, v, height)
			}
		}
		shims[i] = sh
	}
	return Slot{Up: up, Count: count, Shims: shims}
}

// clampToBand projects v along its radial edge line onto y=0 or y=height
// when it falls outside the band.
func clampToBand(centre, v geom.Coord, height float64) geom.Coord {
	var target float64
	switch {
	case v.Y < 0:
		target = 0
	case v.Y > height:
		target = height
	default:
		return v
	}
	t := (target - centre.Y) / (v.Y - centre.Y)
	return centre.Plus(v.Minus(centre).Times(t))
}

// trailX projects a slot's trailing edge onto the horizontal line where the
// next slot's geometry comes nearest: the bottom edge beneath upward slots,
// the top edge above downward ones. The next slot's leading edge lands at
// the returned x plus NegativeSpace.
func (o outline) trailX(count int, up bool, x0, height float64) float64 {
	centre := o.anchor(up, x0, height)
	d := ray(float64(count)*o.step, up)
	lineY := height
	if !up {
		lineY = 0
	}
	return centre.X + d.X*(lineY-centre.Y)/d.Y
}

// MaxExtent returns the width and height of the largest piece in an (x, y)
// space. The all-maximum serial bounds the width; in cropped mode the
// all-minimum serial bounds the height, because single-shim fans keep the
// longest inner span.
func MaxExtent(x, y uint64, opts Options) (w, h float64) {
	if x < serial.MinShims {
		x = serial.MinShims
	} else if x > serial.MaxShims {
		x = serial.MaxShims
	}
	if y < 1 {
		y = 1
	}
	widest := Build(uniform(byte('A'+x-1), y), opts)
	w, h = widest.Bounds.Width(), widest.Bounds.Height()
	if opts.Cropped {
		tallest := Build(uniform('A', y), opts)
		if th := tallest.Bounds.Height(); th > h {
			h = th
		}
	}
	return w, h
}

// uniform builds the serial number with every slot at the same count.
func uniform(letter byte, y uint64) serial.Number {
	return serial.Number("+" + strings.Repeat(string(letter), int(y)))
}
