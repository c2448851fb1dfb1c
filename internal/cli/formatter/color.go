package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/charmbracelet/lipgloss"
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

// PlanStatusPill returns a colored status indicator such as "● Active".
func PlanStatusPill(status domain.PlanStatus) string {
	switch status {
	case domain.PlanActive:
		return StyleGreen.Render("● Active")
	case domain.PlanDraft:
		return StyleYellow.Render("○ Draft")
	case domain.PlanShipped:
		return StyleBlue.Render("✔ Shipped")
	case domain.PlanArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// FeatureStatusStyle returns the style for a feature status.
func FeatureStatusStyle(status domain.FeatureStatus) lipgloss.Style {
	switch status {
	case domain.FeatureDone:
		return StyleGreen
	case domain.FeatureInProgress:
		return StyleYellow
	case domain.FeatureCommitted:
		return StyleBlue
	case domain.FeatureDropped:
		return StyleRed
	default:
		return StyleDim
	}
}

// FeatureStatusIndicator returns a colored status label such as "◐ in progress".
func FeatureStatusIndicator(status domain.FeatureStatus) string {
	icon := "○"
	switch status {
	case domain.FeatureDone:
		icon = "●"
	case domain.FeatureInProgress:
		icon = "◐"
	case domain.FeatureCommitted:
		icon = "◆"
	case domain.FeatureDropped:
		icon = "✖"
	}
	label := strings.ReplaceAll(string(status), "_", " ")
	return FeatureStatusStyle(status).Render(icon + " " + label)
}

// PhaseStyle returns a foreground style in the phase's own color.
func PhaseStyle(color string) lipgloss.Style {
	if color == "" {
		color = domain.DefaultPhaseColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
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
