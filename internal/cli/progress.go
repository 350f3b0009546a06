package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stevenrrose/Shim-Index/pkg/tiling"
)

// =============================================================================
// ExportModel - live progress for a running export job
// =============================================================================

// stepMsg carries the outcome of one job step.
type stepMsg struct {
	more bool
	err  error
	prog tiling.Progress
}

// ExportModel is the bubbletea model that drives an export job one chunk
// at a time and renders a progress bar between chunks.
type ExportModel struct {
	Prog     tiling.Progress
	Width    int
	Quitting bool
	Err      error

	job    *tiling.Job
	kind   string
	ctx    context.Context
	cancel context.CancelFunc
}

// newExportModel wraps a job for interactive progress display. Quitting the
// model cancels the job through a derived context.
func newExportModel(ctx context.Context, job *tiling.Job) ExportModel {
	ctx, cancel := context.WithCancel(ctx)
	return ExportModel{
		Prog:   job.Progress(),
		Width:  64,
		job:    job,
		kind:   job.Kind(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// step runs one chunk off the UI goroutine and reports back.
func (m ExportModel) step() tea.Cmd {
	job, ctx := m.job, m.ctx
	return func() tea.Msg {
		more, err := job.Step(ctx)
		return stepMsg{more: more, err: err, prog: job.Progress()}
	}
}

func (m ExportModel) Init() tea.Cmd {
	return m.step()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.Quitting {
				m.Quitting = true
				m.cancel()
			}
			// The in-flight step observes the cancellation and quits.
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	case stepMsg:
		m.Prog = msg.prog
		if msg.err != nil {
			m.Err = msg.err
			return m, tea.Quit
		}
		if !msg.more {
			return m, tea.Quit
		}
		return m, m.step()
	}
	return m, nil
}

func (m ExportModel) View() string {
	var b strings.Builder

	if m.kind == tiling.KindArchives {
		b.WriteString(StyleTitle.Render("Building archives"))
	} else {
		b.WriteString(StyleTitle.Render("Exporting documents"))
	}
	b.WriteString("\n")
	switch {
	case m.Quitting:
		b.WriteString(StyleWarning.Render("cancelling..."))
	case m.Err != nil:
		b.WriteString(StyleWarning.Render("stopped"))
	default:
		b.WriteString(StyleDim.Render("q cancel"))
	}
	b.WriteString("\n\n")

	width := m.Width - 10
	if width > 48 {
		width = 48
	}
	if width < 10 {
		width = 10
	}
	filled := barFill(width, m.Prog.ItemsDone, m.Prog.ItemsTotal)
	b.WriteString(StyleSuccess.Render(strings.Repeat("█", filled)))
	b.WriteString(StyleDim.Render(strings.Repeat("░", width-filled)))
	b.WriteString(fmt.Sprintf(" %3d%%", percent(m.Prog.ItemsDone, m.Prog.ItemsTotal)))
	b.WriteString("\n")

	b.WriteString(StyleNumber.Render(fmt.Sprintf("%d", m.Prog.ItemsDone)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("/%d pieces", m.Prog.ItemsTotal)))
	if m.kind == tiling.KindArchives {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  archive %d/%d",
			m.Prog.Document, m.Prog.DocumentsTotal)))
	} else {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  page %d/%d  document %d/%d",
			m.Prog.Page, m.Prog.PagesTotal, m.Prog.Document, m.Prog.DocumentsTotal)))
	}
	b.WriteString("\n")

	return b.String()
}

// barFill returns how many of width cells are filled at done out of total.
func barFill(width int, done, total uint64) int {
	if total == 0 {
		return width
	}
	filled := int(uint64(width) * done / total)
	if filled > width {
		filled = width
	}
	return filled
}

func percent(done, total uint64) int {
	if total == 0 {
		return 100
	}
	return int(100 * done / total)
}
