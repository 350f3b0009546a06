// Package selection describes which indices of a serial number space an
// export covers.
//
// # Model
//
// A [Selection] pairs a [Mode] with a sparse index [Set]. Exclude mode
// means "every index except these"; include mode means "only these". The
// zero value selects the whole space, which is the common case for full
// catalog exports.
//
// Sets stay sorted, so iteration and the job-facing [Selection.Stream]
// always yield indices in ascending order regardless of the order toggles
// arrived in.
//
// # JSON Format
//
// Selections serialize to a small JSON object so they can be kept in files
// and passed to the CLI:
//
//	{
//	  "mode": "include",
//	  "indices": [0, 7, 42]
//	}
//
// Use [ImportJSON] / [ExportJSON] for file round-trips and [ReadJSON] /
// [WriteJSON] for streams.
package selection
