package tiling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jbeda/geom"

	"github.com/stevenrrose/Shim-Index/pkg/observability"
	"github.com/stevenrrose/Shim-Index/pkg/piece"
	"github.com/stevenrrose/Shim-Index/pkg/render"
	"github.com/stevenrrose/Shim-Index/pkg/selection"
	"github.com/stevenrrose/Shim-Index/pkg/serial"
)

// labelScale sizes the label font relative to the label band.
const labelScale = 0.8

var (
	pieceStyle  = render.Style{Stroked: true, LineWidth: 0.75}
	boundsStyle = render.Style{Stroked: true, Stroke: render.Color{R: 0.7, G: 0.7, B: 0.7}, LineWidth: 0.5}
)

// Job is one export in progress. Jobs are created by an [Exporter] and
// driven by the caller: each [Job.Step] processes one chunk of pieces,
// [Job.Run] loops Step to completion.
type Job struct {
	opts Options
	kind string
	id   string

	grid    Grid
	stream  *selection.Stream
	limited bool

	itemsTotal uint64
	docCap     uint64 // items per document, 0 = unbounded
	pagesTotal int
	docsTotal  int

	itemsDone uint64
	page      int // 1-based, counted across documents
	docIndex  int // 1-based
	docItems  int
	docPages  int
	cell      int // next free cell on the current page

	newDoc   func(width, height float64, opts ...render.Option) render.Renderer
	doc      render.Renderer
	arch     *archiveWriter
	docStart time.Time

	begun   bool
	started time.Time
	done    bool
	err     error
	release func()
}

func newJob(kind string, opts Options, release func()) (*Job, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	size, err := opts.Space.Size()
	if err != nil {
		return nil, fmt.Errorf("space size: %w", err)
	}

	j := &Job{
		opts:    opts,
		kind:    kind,
		id:      uuid.New().String()[:8],
		stream:  opts.Selection.Stream(size),
		newDoc:  documentRenderer(opts),
		started: time.Now(),
		release: release,
	}

	j.itemsTotal = opts.Selection.Count(size)
	if lim := opts.Limits.MaxItems; lim > 0 && lim < j.itemsTotal {
		j.itemsTotal = lim
		j.limited = true
	}

	if kind == KindDocuments {
		maxW, maxH := piece.MaxExtent(opts.Space.X, opts.Space.Y, opts.Piece)
		grid, err := FitGrid(opts.Page, maxW, maxH)
		if err != nil {
			return nil, err
		}
		j.grid = grid
		j.docCap = documentCapacity(opts.Limits, uint64(grid.PerPage()))
		j.planDocuments(uint64(grid.PerPage()))
	} else {
		if m := opts.Limits.MaxPerDocument; m > 0 {
			j.docCap = uint64(m)
		}
		j.planArchives()
	}
	return j, nil
}

// documentCapacity resolves the per-document item cap from the page cap
// and the item cap, whichever is tighter. Zero means unbounded.
func documentCapacity(lim Limits, perPage uint64) uint64 {
	var c uint64
	if lim.MaxPages > 0 {
		c = uint64(lim.MaxPages) * perPage
	}
	if lim.MaxPerDocument > 0 {
		itemCap := uint64(lim.MaxPerDocument)
		if c == 0 || itemCap < c {
			c = itemCap
		}
	}
	return c
}

func (j *Job) planDocuments(perPage uint64) {
	if j.itemsTotal == 0 {
		return
	}
	if j.docCap == 0 {
		j.docsTotal = 1
		j.pagesTotal = int(ceilDiv(j.itemsTotal, perPage))
		return
	}
	// Every full document carries exactly docCap items.
	full := j.itemsTotal / j.docCap
	rem := j.itemsTotal % j.docCap
	j.docsTotal = int(full)
	j.pagesTotal = int(full) * int(ceilDiv(j.docCap, perPage))
	if rem > 0 {
		j.docsTotal++
		j.pagesTotal += int(ceilDiv(rem, perPage))
	}
}

func (j *Job) planArchives() {
	if j.itemsTotal == 0 {
		return
	}
	if j.docCap == 0 {
		j.docsTotal = 1
		return
	}
	j.docsTotal = int(ceilDiv(j.itemsTotal, j.docCap))
}

func ceilDiv(a, b uint64) uint64 { return (a + b - 1) / b }

// ID returns the short job identifier used in output file names.
func (j *Job) ID() string { return j.id }

// Kind returns KindDocuments or KindArchives.
func (j *Job) Kind() string { return j.kind }

// Done reports whether the job has finished, successfully or not.
func (j *Job) Done() bool { return j.done }

// Err returns the error that stopped the job, if any.
func (j *Job) Err() error { return j.err }

// Grid returns the fitted page grid. Meaningful for document jobs only.
func (j *Job) Grid() Grid { return j.grid }

// Progress returns a snapshot of the job counters.
func (j *Job) Progress() Progress {
	return Progress{
		ItemsDone:      j.itemsDone,
		ItemsTotal:     j.itemsTotal,
		Page:           j.page,
		PagesTotal:     j.pagesTotal,
		Document:       j.docIndex,
		DocumentsTotal: j.docsTotal,
	}
}

// Step processes one chunk of pieces. It returns true while work remains;
// false with a nil error means clean completion. Calling Step on a
// finished job returns false and the job's error, if any.
func (j *Job) Step(ctx context.Context) (bool, error) {
	if j.done {
		return false, j.err
	}
	if !j.begun {
		j.begun = true
		observability.Export().OnJobStart(ctx, j.kind, j.itemsTotal)
		j.opts.Logger.Debug("export started",
			"kind", j.kind, "job", j.id, "items", j.itemsTotal)
	}
	if err := ctx.Err(); err != nil {
		return false, j.fail(ctx, err)
	}

	chunkEnd := min(j.itemsDone+uint64(j.opts.ChunkSize), j.itemsTotal)
	for j.itemsDone < chunkEnd {
		idx, ok := j.stream.Next()
		if !ok {
			break
		}
		n, err := j.opts.Space.At(idx)
		if err != nil {
			return false, j.fail(ctx, fmt.Errorf("serial at index %d: %w", idx, err))
		}
		if err := j.place(ctx, n); err != nil {
			return false, j.fail(ctx, err)
		}
		j.itemsDone++
	}

	j.reportProgress(ctx)
	if j.itemsDone >= j.itemsTotal {
		return false, j.finish(ctx)
	}
	return true, nil
}

// Run drives Step until the job completes or fails.
func (j *Job) Run(ctx context.Context) error {
	for {
		more, err := j.Step(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (j *Job) reportProgress(ctx context.Context) {
	observability.Export().OnChunk(ctx, j.kind, j.itemsDone, j.itemsTotal)
	if j.opts.OnProgress != nil {
		j.opts.OnProgress(j.Progress())
	}
}

// place routes one serial number into the current document or archive,
// rotating pages and documents as caps fill up.
func (j *Job) place(ctx context.Context, n serial.Number) error {
	if j.kind == KindArchives {
		return j.placeEntry(ctx, n)
	}
	switch {
	case j.doc == nil:
		j.openDocument()
	case j.docCap > 0 && uint64(j.docItems) == j.docCap:
		if err := j.closeDocument(ctx); err != nil {
			return err
		}
		j.openDocument()
	case j.cell == j.grid.PerPage():
		j.doc.BeginPage()
		j.page++
		j.docPages++
		j.cell = 0
	}
	j.drawCell(n)
	j.docItems++
	j.cell++
	return nil
}

// documentRenderer picks the document backend: a recorder for dry runs,
// the PDF writer otherwise.
func documentRenderer(opts Options) func(width, height float64, ropts ...render.Option) render.Renderer {
	if opts.DryRun {
		return func(float64, float64, ...render.Option) render.Renderer {
			return render.NewRecorder()
		}
	}
	return func(width, height float64, ropts ...render.Option) render.Renderer {
		return render.NewPDF(width, height, ropts...)
	}
}

func (j *Job) openDocument() {
	j.doc = j.newDoc(j.opts.Page.Width, j.opts.Page.Height,
		render.WithTitle(j.title()), render.WithCreator("shimindex"))
	j.doc.BeginPage()
	j.docIndex++
	j.docItems = 0
	j.docPages = 1
	j.page++
	j.cell = 0
	j.docStart = time.Now()
}

func (j *Job) closeDocument(ctx context.Context) error {
	data, err := j.doc.Finalize()
	if err != nil {
		return fmt.Errorf("finalize document: %w", err)
	}
	j.doc = nil
	ext := "pdf"
	if j.opts.DryRun {
		ext = "json"
	}
	name := fmt.Sprintf("pieces-%s-%03d.%s", j.id, j.docIndex, ext)
	return j.emit(ctx, Document{Name: name, Data: data, Pages: j.docPages, Items: j.docItems})
}

// emit hands a finalized document to the callback. Data ownership
// transfers with it.
func (j *Job) emit(ctx context.Context, doc Document) error {
	observability.Document().OnDocument(ctx, j.kind, doc.Name, doc.Items, len(doc.Data), time.Since(j.docStart))
	msg := "finalized document"
	if j.kind == KindArchives {
		msg = "finalized archive"
	}
	j.opts.Logger.Info(msg,
		"name", doc.Name, "items", doc.Items, "pages", doc.Pages, "bytes", len(doc.Data))
	if j.opts.OnDocument != nil {
		if err := j.opts.OnDocument(doc); err != nil {
			return fmt.Errorf("document callback: %w", err)
		}
	}
	return nil
}

// drawCell paints one piece and its serial label into the next grid cell.
func (j *Job) drawCell(n serial.Number) {
	p := piece.Build(n, j.opts.Piece)
	origin := j.grid.CellOrigin(j.cell)

	// Center horizontally, stand on the cell's base line.
	target := geom.Coord{
		X: origin.X + (j.grid.PieceWidth-p.Bounds.Width()*j.grid.Scale)/2,
		Y: origin.Y + j.grid.PieceHeight - p.Bounds.Height()*j.grid.Scale,
	}
	DrawPiece(j.doc, p, target, j.grid.Scale, j.opts.DrawBounds)

	fontSize := j.grid.LabelBand * labelScale
	baseline := geom.Coord{X: origin.X, Y: origin.Y + j.grid.PieceHeight + fontSize}
	j.doc.DrawText(string(n), baseline, render.Style{Filled: true, FontSize: fontSize})
}

// DrawPiece paints a piece onto any renderer with its bounding box corner
// mapped to origin. Vertices are scaled uniformly; withBounds outlines the
// scaled bounding box behind the shims.
func DrawPiece(r render.Renderer, p piece.Piece, origin geom.Coord, scale float64, withBounds bool) {
	if p.Empty() {
		return
	}
	off := geom.Coord{
		X: origin.X - p.Bounds.Min.X*scale,
		Y: origin.Y - p.Bounds.Min.Y*scale,
	}
	if withBounds {
		r.DrawRect(geom.Rect{
			Min: origin,
			Max: geom.Coord{
				X: origin.X + p.Bounds.Width()*scale,
				Y: origin.Y + p.Bounds.Height()*scale,
			},
		}, boundsStyle)
	}
	for _, slot := range p.Slots {
		for _, shim := range slot.Shims {
			pts := make([]geom.Coord, len(shim))
			for i, v := range shim {
				pts[i] = geom.Coord{X: off.X + v.X*scale, Y: off.Y + v.Y*scale}
			}
			r.DrawPolygon(pts, pieceStyle)
		}
	}
}

func (j *Job) title() string {
	if j.opts.Title != "" {
		return j.opts.Title
	}
	return fmt.Sprintf("Shim pieces x=%d y=%d seed=%d",
		j.opts.Space.X, j.opts.Space.Y, j.opts.Space.Seed)
}

// finish closes the in-progress output and fires OnFinish exactly once.
func (j *Job) finish(ctx context.Context) error {
	if j.doc != nil {
		if err := j.closeDocument(ctx); err != nil {
			return j.fail(ctx, err)
		}
	}
	if j.arch != nil {
		if err := j.closeArchive(ctx); err != nil {
			return j.fail(ctx, err)
		}
	}
	j.done = true
	j.release()

	duration := time.Since(j.started)
	observability.Export().OnJobComplete(ctx, j.kind, j.itemsDone, duration, nil)
	j.opts.Logger.Info("export complete",
		"kind", j.kind, "job", j.id,
		"items", j.itemsDone, "documents", j.docIndex, "duration", duration)
	if j.opts.OnFinish != nil {
		j.opts.OnFinish(Summary{
			Items:     j.itemsDone,
			Pages:     j.page,
			Documents: j.docIndex,
			Limited:   j.limited,
			Duration:  duration,
		})
	}
	return nil
}

func (j *Job) fail(ctx context.Context, err error) error {
	if j.done {
		return j.err
	}
	j.done = true
	j.err = err
	j.release()
	observability.Export().OnJobComplete(ctx, j.kind, j.itemsDone, time.Since(j.started), err)
	j.opts.Logger.Error("export failed", "kind", j.kind, "job", j.id, "err", err)
	return err
}
