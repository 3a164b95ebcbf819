package mastery

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	colorNovice     = lipgloss.Color("#F43F5E") // Rose
	colorDeveloping = lipgloss.Color("#F97316") // Orange
	colorProficient = lipgloss.Color("#14B8A6") // Teal
	colorMastered   = lipgloss.Color("#22C55E") // Green
	colorTrack      = lipgloss.Color("#334155") // Slate
	colorDim        = lipgloss.Color("#94A3B8")
	colorHeader     = lipgloss.Color("#8B5CF6") // Purple
)

// LevelColor returns the display color of a level.
func LevelColor(l Level) color.Color {
	switch l {
	case LevelMastered:
		return colorMastered
	case LevelProficient:
		return colorProficient
	case LevelDeveloping:
		return colorDeveloping
	default:
		return colorNovice
	}
}

// RenderBar draws a horizontal bar of the given cell width filled to
// pKnown, followed by the percentage.
func RenderBar(pKnown float64, width int) string {
	if width < 4 {
		width = 4
	}

	filled := int(float64(width) * pKnown)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled

	filledStr := lipgloss.NewStyle().
		Background(LevelColor(LevelFor(pKnown))).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(colorTrack).
		Render(strings.Repeat(" ", empty))

	pct := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf(" %3d%%", int(pKnown*100+0.5)))

	return filledStr + emptyStr + pct
}

// RenderTable renders a learner's mastery rows as a table with one bar per
// skill. Descriptions are included when withDescriptions is set.
func RenderTable(rows []SkillMastery, barWidth int, withDescriptions bool) string {
	headers := []string{"SKILL", "MASTERY", "LEVEL"}
	if withDescriptions {
		headers = append(headers, "DESCRIPTION")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorTrack)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(colorHeader)
			}
			if col == 2 && row >= 0 && row < len(rows) {
				return s.Foreground(LevelColor(rows[row].Level))
			}
			return s
		})

	for _, r := range rows {
		cells := []string{r.SkillID, RenderBar(r.PKnown, barWidth), string(r.Level)}
		if withDescriptions {
			desc := "-"
			if r.Description != nil {
				desc = *r.Description
			}
			cells = append(cells, desc)
		}
		t.Row(cells...)
	}

	return t.Render()
}
