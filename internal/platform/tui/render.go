package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245"))
	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// RenderBoard renders b as a plain ranked table for non-interactive output.
// highlight is the 1-based rank to emphasize, 0 for none.
func RenderBoard(b leaderboard.Board, highlight int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("High Scores"))
	sb.WriteString("\n\n")

	if b.IsEmpty() {
		sb.WriteString(mutedStyle.Render("No scores recorded yet."))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(headerStyle.Render(fmt.Sprintf("  %-4s  %-6s  %s", "Rank", "Score", "Date")))
	sb.WriteString("\n")

	for i, e := range b.Entries() {
		line := fmt.Sprintf("  %-4s  %-6d  %s", fmt.Sprintf("%d.)", i+1), e.Score, e.RecordedOn)
		if i+1 == highlight {
			line = highlightStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
