package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/editflowhq/editflow/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityColor returns the lipgloss style for the given job priority.
func PriorityColor(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	case domain.PriorityLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// PriorityBadge returns a colored priority marker such as "● HIGH".
func PriorityBadge(p domain.Priority) string {
	return PriorityColor(p).Render("● " + strings.ToUpper(string(p)))
}

// StatusLabel returns a colored human-readable status label.
func StatusLabel(s domain.JobStatus) string {
	switch s {
	case domain.JobQueued:
		return StyleDim.Render("queued")
	case domain.JobInProgress:
		return StyleBlue.Render("in progress")
	case domain.JobReview:
		return StylePurple.Render("review")
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
