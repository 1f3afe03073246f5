package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	chipStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#4287f5")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)
	chipFlashStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2ecc71")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c")).Bold(true)
	savedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	overlayStyle = lipgloss.NewStyle().Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4287f5")).Bold(true)
)

// View renders the whole screen: video area, scrub bar, info line, status or
// prompt line, and help.
func (m Model) View() string {
	var view strings.Builder
	view.WriteString(m.viewVideo())
	view.WriteByte('\n')
	view.WriteString(m.viewSlider())
	view.WriteByte('\n')
	view.WriteString(m.viewInfo())
	view.WriteByte('\n')
	view.WriteString(m.viewStatus())
	view.WriteByte('\n')
	view.WriteString(m.help.View(m.keys))
	return view.String()
}

func (m Model) viewVideo() string {
	h := m.videoHeight()

	var lines []string
	if m.player.IsOpen() && m.frameView != "" {
		lines = strings.Split(m.frameView, "\n")
	} else {
		lines = m.placeholderLines(h)
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	lines = lines[:h]

	// Play/pause glyph briefly replaces the center line, then fades.
	if m.overlayGlyph != "" {
		style := overlayStyle
		if m.overlayTTL <= 2 {
			style = style.Faint(true)
		}
		lines[h/2] = centerLine(style.Render(m.overlayGlyph), m.width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) placeholderLines(h int) []string {
	lines := make([]string, h)
	msg := "No video loaded. Press 'o' to open a video file or frame directory"
	if m.player.IsOpen() {
		msg = "Opened stream has no frames"
	}
	lines[h/2] = centerLine(dimStyle.Render(msg), m.width)
	return lines
}

func (m Model) viewSlider() string {
	n := m.player.FrameCount()
	if !m.player.IsOpen() || n < 2 {
		return m.slider.ViewAs(0)
	}
	// While the user is dragging, the bar tracks the grab position instead
	// of the decode position.
	idx := m.player.CurrentIndex()
	if m.sliderHeld {
		idx = m.sliderPos
	}
	return m.slider.ViewAs(float64(idx) / float64(n-1))
}

func (m Model) viewInfo() string {
	chip := chipStyle
	if m.flashing {
		chip = chipFlashStyle
	}

	parts := []string{
		fmt.Sprintf("Frame: %d / %d", m.player.CurrentIndex(), m.player.FrameCount()),
		chip.Render(fmt.Sprintf("Next image: %d", m.seq.NextIndex())),
	}
	if p := m.player.Path(); p != "" {
		parts = append(parts, dimStyle.Render(p))
	}
	if d := m.seq.Dir(); d != "" {
		parts = append(parts, dimStyle.Render("→ "+d))
	}
	return strings.Join(parts, "  ")
}

func (m Model) viewStatus() string {
	if m.prompt != promptNone {
		label := "Open video: "
		if m.prompt == promptDir {
			label = "Save directory: "
		}
		return promptStyle.Render(label) + m.input.View()
	}
	switch m.statusKind {
	case statusError:
		return errorStyle.Render(m.status)
	case statusSaved:
		return savedStyle.Render(m.status)
	default:
		return m.status
	}
}

func centerLine(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
