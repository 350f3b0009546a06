package tiling

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jbeda/geom"

	"github.com/stevenrrose/Shim-Index/pkg/observability"
	"github.com/stevenrrose/Shim-Index/pkg/piece"
	"github.com/stevenrrose/Shim-Index/pkg/render"
	"github.com/stevenrrose/Shim-Index/pkg/serial"
)

// entryMargin is the whitespace around a piece in its archive entry, in
// piece units.
const entryMargin = 4.0

type archiveWriter struct {
	buf bytes.Buffer
	zw  *zip.Writer
}

func newArchiveWriter() *archiveWriter {
	a := &archiveWriter{}
	a.zw = zip.NewWriter(&a.buf)
	return a
}

func (a *archiveWriter) add(name string, data []byte) error {
	w, err := a.zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (a *archiveWriter) finish() ([]byte, error) {
	if err := a.zw.Close(); err != nil {
		return nil, err
	}
	return a.buf.Bytes(), nil
}

// placeEntry renders one piece into its own file and appends it to the
// current archive, rotating archives when the entry cap fills up.
func (j *Job) placeEntry(ctx context.Context, n serial.Number) error {
	switch {
	case j.arch == nil:
		j.openArchive()
	case j.docCap > 0 && uint64(j.docItems) == j.docCap:
		if err := j.closeArchive(ctx); err != nil {
			return err
		}
		j.openArchive()
	}

	data, err := renderEntry(n, j.opts)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s.%s", n, entryExt(j.opts))
	if err := j.arch.add(name, data); err != nil {
		return fmt.Errorf("archive entry %s: %w", name, err)
	}
	observability.Document().OnEntry(ctx, j.archiveName(), name, len(data))
	j.docItems++
	return nil
}

func (j *Job) openArchive() {
	j.arch = newArchiveWriter()
	j.docIndex++
	j.docItems = 0
	j.docStart = time.Now()
}

func (j *Job) closeArchive(ctx context.Context) error {
	data, err := j.arch.finish()
	if err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	j.arch = nil
	return j.emit(ctx, Document{Name: j.archiveName(), Data: data, Items: j.docItems})
}

func (j *Job) archiveName() string {
	return fmt.Sprintf("pieces-%s-%03d.zip", j.id, j.docIndex)
}

// entryExt is the file extension of one archive entry.
func entryExt(opts Options) string {
	if opts.DryRun {
		return "json"
	}
	return opts.Format
}

// renderEntry draws one piece on a single page sized to its bounding box
// plus margin, at natural scale.
func renderEntry(n serial.Number, opts Options) ([]byte, error) {
	p := piece.Build(n, opts.Piece)
	w, h := p.Bounds.Width(), p.Bounds.Height()
	if p.Empty() {
		w, h = 0, 0
	}

	var r render.Renderer
	switch {
	case opts.DryRun:
		r = render.NewRecorder()
	case opts.Format == FormatPDF:
		r = render.NewPDF(w+2*entryMargin, h+2*entryMargin, render.WithTitle(string(n)))
	default:
		r = render.NewSVG(w+2*entryMargin, h+2*entryMargin, render.WithTitle(string(n)))
	}
	r.BeginPage()
	DrawPiece(r, p, geom.Coord{X: entryMargin, Y: entryMargin}, 1, opts.DrawBounds)

	data, err := r.Finalize()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", n, err)
	}
	return data, nil
}
