// Package tiling drives batch exports of shim pieces into paginated
// documents and per-piece archives.
//
// # Architecture
//
// An export runs as a single cooperative job:
//
//  1. Plan: fit a uniform grid to the page (documents) or size archive
//     batches (archives), and pre-compute item/page/document totals.
//  2. Stream: walk the selection in ascending index order, mapping each
//     index through the serial space and the geometry builder.
//  3. Pack: place each piece in the next grid cell or archive entry,
//     rotating pages and documents as limits fill up.
//
// Work happens in bounded chunks. [Job.Step] processes one chunk and
// returns, so a UI event loop can interleave rendering with input
// handling; [Job.Run] loops Step for synchronous callers. Exactly one job
// runs at a time, enforced by [Exporter].
//
// # Usage
//
// Create an exporter and drive a job to completion:
//
//	exp := tiling.NewExporter(logger)
//	job, err := exp.Documents(tiling.Options{
//	    Space: serial.Space{X: 4, Y: 3, Seed: 42},
//	    OnDocument: func(doc tiling.Document) error {
//	        return os.WriteFile(doc.Name, doc.Data, 0o644)
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := job.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Progress, document, and finish callbacks fire on the calling goroutine,
// between chunks.
package tiling
