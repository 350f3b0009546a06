// Package piece turns serial numbers into shim geometry.
//
// # Anatomy of a piece
//
// A piece is a row of slots, one per serial-number letter. Each slot is a
// fan of wedge-shaped shims sharing an edge: triangular wedges rotate about
// the slot tip, trapezoidal wedges about a virtual centre behind the tip.
// Slot orientation alternates along the piece, upward then downward (or the
// reverse for '-' serials), so adjacent fans interleave like teeth with a
// fixed band of negative space between them.
//
// # Coordinates
//
// Pieces live in a y-down frame, the convention of the page formats they
// are drawn into. The normalized band spans y=0 (top) to y=Height
// (bottom); upward slots hang their fans from tips on the top edge,
// downward slots rise from tips on the bottom edge. Uncropped pieces use
// the full shim side as the band height; cropped pieces shrink the band to
// the shortest inner span and clip every shim to it.
//
// [Build] is a pure function: the same serial number and options always
// produce the same polygons and bounding box. Malformed serial numbers
// yield the empty Piece rather than an error, mirroring how the drawing
// paths treat them.
package piece
