// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about export jobs and produced
// documents.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(&myExportHooks{})
//	    observability.SetDocumentHooks(&myDocumentHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnJobStart(ctx, kind, total)
//	// ... process chunks ...
//	observability.Export().OnJobComplete(ctx, kind, done, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ExportHooks receives events from export job execution.
type ExportHooks interface {
	// OnJobStart records a job starting with its planned item count.
	OnJobStart(ctx context.Context, kind string, itemsTotal uint64)

	// OnChunk records one completed chunk of work.
	OnChunk(ctx context.Context, kind string, itemsDone, itemsTotal uint64)

	// OnJobComplete records the job finishing, successfully or not.
	OnJobComplete(ctx context.Context, kind string, itemsDone uint64, duration time.Duration, err error)
}

// DocumentHooks receives events about produced documents and archives.
type DocumentHooks interface {
	// OnDocument records a finalized document or archive.
	OnDocument(ctx context.Context, kind, name string, items int, size int, duration time.Duration)

	// OnEntry records a single archive entry.
	OnEntry(ctx context.Context, archive, entry string, size int)
}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnJobStart(context.Context, string, uint64)                          {}
func (NoopExportHooks) OnChunk(context.Context, string, uint64, uint64)                     {}
func (NoopExportHooks) OnJobComplete(context.Context, string, uint64, time.Duration, error) {}

// NoopDocumentHooks is a no-op implementation of DocumentHooks.
type NoopDocumentHooks struct{}

func (NoopDocumentHooks) OnDocument(context.Context, string, string, int, int, time.Duration) {}
func (NoopDocumentHooks) OnEntry(context.Context, string, string, int)                        {}

var (
	exportHooks   ExportHooks   = NoopExportHooks{}
	documentHooks DocumentHooks = NoopDocumentHooks{}
	hooksMu       sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any jobs run.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetDocumentHooks registers custom document hooks.
// This should be called once at application startup before any jobs run.
func SetDocumentHooks(h DocumentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		documentHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Document returns the registered document hooks.
func Document() DocumentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return documentHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	documentHooks = NoopDocumentHooks{}
}
