package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stevenrrose/Shim-Index/pkg/piece"
	"github.com/stevenrrose/Shim-Index/pkg/serial"
)

// =============================================================================
// BrowseModel - interactive serial space browser
// =============================================================================

// BrowseModel pages through a serial space and shows piece geometry for the
// highlighted entry. Serial numbers are derived on demand, so arbitrarily
// large spaces browse without precomputation.
type BrowseModel struct {
	Space  serial.Space
	Piece  piece.Options
	Size   uint64
	Cursor uint64
	Offset uint64
	Height int
	Detail bool
}

// NewBrowseModel creates a browser over a validated space of the given size.
func NewBrowseModel(sp serial.Space, popts piece.Options, size uint64) BrowseModel {
	return BrowseModel{
		Space:  sp,
		Piece:  popts,
		Size:   size,
		Height: 15,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < m.Size-1 {
				m.Cursor++
			}
		case "pgup":
			page := uint64(m.Height)
			if m.Cursor < page {
				m.Cursor = 0
			} else {
				m.Cursor -= page
			}
		case "pgdown":
			page := uint64(m.Height)
			if m.Cursor+page >= m.Size {
				m.Cursor = m.Size - 1
			} else {
				m.Cursor += page
			}
		case "g", "home":
			m.Cursor = 0
		case "G", "end":
			m.Cursor = m.Size - 1
		case "enter", " ":
			m.Detail = !m.Detail
		}
		m.clampOffset()
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
		m.clampOffset()
	}
	return m, nil
}

// clampOffset scrolls the window so the cursor stays visible.
func (m *BrowseModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+uint64(m.Height) {
		m.Offset = m.Cursor - uint64(m.Height) + 1
	}
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Serial Space"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("x=%d y=%d seed=%d  %d numbers",
		m.Space.X, m.Space.Y, m.Space.Seed, m.Size)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ move  pgup/pgdn page  g/G ends  ⏎ detail  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + uint64(m.Height)
	if end > m.Size {
		end = m.Size
	}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		n, err := m.Space.At(i)
		row := string(n)
		if err != nil {
			row = "???"
		}
		line := fmt.Sprintf("%s%8d  %s", cursor, i, row)
		if i == m.Cursor {
			b.WriteString(StyleHighlight.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if m.Detail {
		b.WriteString("\n")
		b.WriteString(m.detailView())
	}
	return b.String()
}

// detailView renders geometry facts for the highlighted serial number.
func (m BrowseModel) detailView() string {
	n, err := m.Space.At(m.Cursor)
	if err != nil {
		return StyleWarning.Render(fmt.Sprintf("index %d: %v", m.Cursor, err)) + "\n"
	}
	p := piece.Build(n, m.Piece)

	key := StyleDim.Width(10)
	var b strings.Builder
	b.WriteString(key.Render("serial"))
	b.WriteString(StyleHighlight.Render(string(n)))
	b.WriteString("\n")
	b.WriteString(key.Render("sign"))
	b.WriteString(StyleValue.Render(string(n.Sign())))
	b.WriteString("\n")
	b.WriteString(key.Render("counts"))
	b.WriteString(StyleValue.Render(joinCounts(n.Counts())))
	b.WriteString("\n")
	if !p.Empty() {
		b.WriteString(key.Render("height"))
		b.WriteString(StyleNumber.Render(fmt.Sprintf("%.1f", p.Height)))
		b.WriteString("\n")
		b.WriteString(key.Render("bounds"))
		b.WriteString(StyleNumber.Render(fmt.Sprintf("%.1f × %.1f",
			p.Bounds.Width(), p.Bounds.Height())))
		b.WriteString("\n")
	}
	return b.String()
}

// joinCounts formats per-slot shim counts as a space-separated list.
func joinCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, " ")
}

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var sf spaceFlags
	var pf pieceFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a serial space interactively",
		Long: `Browse a serial space interactively.

Serial numbers are listed in generation order. The detail pane shows the
shim counts and geometry of the highlighted entry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sp := c.resolveSpace(cmd, sf)
			if err := sp.Validate(); err != nil {
				return err
			}
			size, err := sp.Size()
			if err != nil {
				return err
			}

			m := NewBrowseModel(sp, c.resolvePiece(cmd, pf), size)
			p := tea.NewProgram(m)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}

	addSpaceFlags(cmd, &sf)
	addPieceFlags(cmd, &pf)
	return cmd
}
