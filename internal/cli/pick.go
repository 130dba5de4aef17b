package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/collagely/collagely/pkg/source"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickCommand creates the pick command for choosing the main photo.
func (c *CLI) pickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick [dir]",
		Short: "Interactively choose the main photo from a directory",
		Long: `Interactively choose the main photo from a directory.

Photos are listed in name order, the same order the render command uses,
so the selected index can be passed straight to 'render --main-index'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), args[0])
		},
	}
}

// runPick lists the photos in dir and runs the interactive picker.
func (c *CLI) runPick(ctx context.Context, dir string) error {
	refs, err := source.ListDir(dir)
	if err != nil {
		return fmt.Errorf("list photos in %s: %w", dir, err)
	}
	if len(refs) == 0 {
		return fmt.Errorf("no photos found in %s", dir)
	}
	loggerFromContext(ctx).Debugf("Found %d photos in %s", len(refs), dir)

	final, err := tea.NewProgram(newPhotoListModel(refs)).Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	m, ok := final.(photoListModel)
	if !ok || m.selected < 0 {
		printInfo("No photo selected")
		return nil
	}

	printSuccess("Main photo: %s", filepath.Base(refs[m.selected]))
	printKeyValue("index", strconv.Itoa(m.selected))
	printNewline()
	printNextStep("Render", fmt.Sprintf("collagely render --main-index %d %s", m.selected, dir))
	return nil
}

// =============================================================================
// photoListModel - Interactive photo selection
// =============================================================================

// photoListModel is the bubbletea model for choosing the main photo.
type photoListModel struct {
	photos   []string
	cursor   int
	selected int
	height   int
	offset   int
}

// newPhotoListModel creates a new photo list model.
func newPhotoListModel(photos []string) photoListModel {
	return photoListModel{
		photos:   photos,
		selected: -1,
		height:   15,
	}
}

func (m photoListModel) Init() tea.Cmd {
	return nil
}

func (m photoListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.photos)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = m.cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m photoListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Main Photo"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.photos) {
		end = len(m.photos)
	}

	for i := m.offset; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%3d  %s", cursor, i, filepath.Base(m.photos[i]))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.photos))))

	return b.String()
}
