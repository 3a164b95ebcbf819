package mastery

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		p    float64
		want Level
	}{
		{0, LevelNovice},
		{0.39, LevelNovice},
		{0.4, LevelDeveloping},
		{0.69, LevelDeveloping},
		{0.7, LevelProficient},
		{0.949, LevelProficient},
		{0.95, LevelMastered},
		{1, LevelMastered},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.p); got != tt.want {
			t.Errorf("LevelFor(%v) = %s, want %s", tt.p, got, tt.want)
		}
	}
}

func TestRenderBar_Width(t *testing.T) {
	for _, p := range []float64{0, 0.33, 0.5, 1} {
		bar := RenderBar(p, 20)
		// 20 cells of bar plus " NNN%".
		if w := lipgloss.Width(bar); w != 25 {
			t.Errorf("RenderBar(%v, 20) width = %d, want 25", p, w)
		}
	}
}

func TestRenderBar_Percent(t *testing.T) {
	if bar := RenderBar(0.8727, 10); !strings.Contains(bar, "87%") {
		t.Errorf("bar %q does not show 87%%", bar)
	}
	if bar := RenderBar(1, 10); !strings.Contains(bar, "100%") {
		t.Errorf("bar %q does not show 100%%", bar)
	}
}

func TestRenderBar_MinimumWidth(t *testing.T) {
	if w := lipgloss.Width(RenderBar(0.5, 1)); w != 9 {
		t.Errorf("width = %d, want 9", w)
	}
}

func TestRenderTable(t *testing.T) {
	desc := "Sequencing and timelines"
	rows := []SkillMastery{
		{SkillID: "chronology", PKnown: 0.96, Level: LevelMastered, Description: &desc},
		{SkillID: "general", PKnown: 0.2, Level: LevelNovice},
	}

	out := RenderTable(rows, 10, true)
	for _, want := range []string{"SKILL", "DESCRIPTION", "chronology", "general", "mastered", "novice", desc} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	out = RenderTable(rows, 10, false)
	if strings.Contains(out, "DESCRIPTION") {
		t.Errorf("table without descriptions has a DESCRIPTION column:\n%s", out)
	}
}
