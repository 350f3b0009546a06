// Package pkg provides the core libraries for shimindex serial-number
// enumeration and piece export.
//
// # Overview
//
// A shim piece is described by a short serial number: a sign and one letter
// per slot, each letter encoding a shim count. Shimindex walks every serial
// number of a space exactly once, in a seeded pseudo-random order, builds
// the geometry of each piece, and exports the results as print-ready
// documents. The typical data flow:
//
//	Space parameters (x, y, seed)
//	         ↓
//	    [serial] package (full-period permutation over the space)
//	         ↓
//	    [piece] package (deterministic geometry per serial number)
//	         ↓
//	    [tiling] package (grid fitting, pagination, cooperative jobs)
//	         ↓
//	    PDF / SVG / zip output via [render]
//
// # Main Packages
//
// [serial] - Serial number spaces. A linear congruential generator with
// full-period parameters maps enumeration indices to serial numbers and
// back, so spaces of billions of entries need no precomputed tables.
//
// [piece] - Geometry construction. Builds the shim polygons for one serial
// number in normalized units, with optional cropped and trapezoidal
// variants.
//
// [render] - Drawing backends behind a small renderer interface: multi-page
// PDF, single-page SVG, and a JSON recorder for dry runs.
//
// [selection] - Sparse include/exclude index sets used to restrict an
// export to a subset of a space, with JSON import/export.
//
// [tiling] - The export engine. Fits a uniform grid to a page, then drives
// paginated document jobs or per-piece archive jobs in cooperative chunks
// with progress callbacks.
//
// [observability] - Hook interfaces for job and document events, no-op by
// default, registered by the application at startup.
//
// [buildinfo] - Version metadata injected at link time.
//
// # Quick Start
//
// Enumerate a space and build a piece:
//
//	sp := serial.Space{X: 6, Y: 4, Seed: 42}
//	n, _ := sp.At(0)
//	p := piece.Build(n, piece.Options{})
//
// Export the whole space as paginated PDFs:
//
//	exp := tiling.NewExporter(logger)
//	job, _ := exp.Documents(tiling.Options{
//	    Space:      sp,
//	    OnDocument: func(doc tiling.Document) error { return os.WriteFile(doc.Name, doc.Data, 0o644) },
//	})
//	_ = job.Run(ctx)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/serial/...    # Specific package
//	go test -run Example        # Examples only
//
// [serial]: https://pkg.go.dev/github.com/stevenrrose/Shim-Index/pkg/serial
// [piece]: https://pkg.go.dev/github.com/stevenrrose/Shim-Index/pkg/piece
// [render]: https://pkg.go.dev/github.com/stevenrrose/Shim-Index/pkg/render
// [selection]: https://pkg.go.dev/github.com/stevenrrose/Shim-Index/pkg/selection
// [tiling]: https://pkg.go.dev/github.com/stevenrrose/Shim-Index/pkg/tiling
// [observability]: https://pkg.go.dev/github.com/stevenrrose/Shim-Index/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/stevenrrose/Shim-Index/pkg/buildinfo
package pkg
