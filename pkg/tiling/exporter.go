package tiling

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Exporter creates export jobs and enforces that only one runs at a time.
// A second job requested while one is unfinished is rejected with
// ErrJobActive, never queued.
type Exporter struct {
	mu     sync.Mutex
	active *Job
	logger *log.Logger
}

// NewExporter returns an exporter. A nil logger falls back to the package
// default logger.
func NewExporter(logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{logger: logger}
}

// Documents starts a job packing pieces into paginated PDF documents.
func (e *Exporter) Documents(opts Options) (*Job, error) {
	return e.start(KindDocuments, opts)
}

// Archives starts a job exporting one file per piece into zip archives.
func (e *Exporter) Archives(opts Options) (*Job, error) {
	return e.start(KindArchives, opts)
}

func (e *Exporter) start(kind string, opts Options) (*Job, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		return nil, ErrJobActive
	}
	if opts.Logger == nil {
		opts.Logger = e.logger
	}
	j, err := newJob(kind, opts, e.release)
	if err != nil {
		return nil, err
	}
	e.active = j
	e.logger.Debug("job created", "kind", kind, "job", j.id, "items", j.itemsTotal)
	return j, nil
}

// release clears the active slot when a job finishes or fails.
func (e *Exporter) release() {
	e.mu.Lock()
	e.active = nil
	e.mu.Unlock()
}

// Active returns the unfinished job, or nil.
func (e *Exporter) Active() *Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}
