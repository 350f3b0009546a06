// Package render defines the drawing contract between the tiling engine
// and concrete document encoders.
//
// A [Renderer] receives pages of polygons, rectangles and text labels in a
// y-down coordinate frame and finalizes them into one document. Three
// implementations ship with the package:
//
//   - [NewPDF]: a native multi-page PDF 1.4 writer with compressed content
//     streams, used for print documents
//   - [NewSVG]: a single-page SVG writer, used for archive entries and
//     quick previews
//   - [NewRecorder]: captures every operation and finalizes to JSON, used
//     in tests to assert on exactly what was drawn
//
// Neither the geometry builder nor the tiling engine knows which encoder
// sits behind the interface.
package render
