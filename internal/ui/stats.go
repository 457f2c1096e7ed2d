package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lair/internal/catalog"
)

// renderStats renders the usage counters and catalog breakdown.
func (m Model) renderStats(width, height int) string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	row := func(label, value string, style lipgloss.Style) string {
		return bg.Render(padRight(label, 18), styles.MutedText) + bg.Render(value, style)
	}

	st := m.view.stats
	lines := []string{
		bg.Render("Your lair", styles.Text.Bold(true)),
		"",
		row("Dragons viewed", fmt.Sprintf("%d", st.DragonsViewed), styles.Text),
		row("Time spent", formatSeconds(st.TimeSpent), styles.Text),
		row("Favorites", fmt.Sprintf("%d", m.view.favoriteCount()), styles.FavoriteText),
		"",
		bg.Render("Catalog", styles.Text.Bold(true)),
		"",
		row("Dragons", fmt.Sprintf("%d", m.view.catalogSize), styles.Text),
		row("Types", fmt.Sprintf("%d", len(m.view.types)), styles.Text),
		row("Abilities", fmt.Sprintf("%d", len(m.view.abilities)), styles.Text),
	}
	for _, r := range catalog.Rarities() {
		n := m.view.rarities[r]
		pct := 0
		if m.view.catalogSize > 0 {
			pct = n * 100 / m.view.catalogSize
		}
		lines = append(lines,
			row(titleCase(string(r)), fmt.Sprintf("%-3d ", n), styles.Text)+
				bg.Render(bar(pct, StatBarWidth), lipgloss.NewStyle().
					Foreground(lipgloss.Color(m.theme.RarityColors[r])).
					Background(lipgloss.Color(bgColor))))
	}

	lines = append(lines, "", bg.Render("Preferences", styles.Text.Bold(true)), "")
	onOff := func(v bool) (string, lipgloss.Style) {
		if v {
			return "on", styles.SuccessText
		}
		return "off", styles.FaintText
	}
	lines = append(lines, row("Theme", string(m.view.prefs.Theme), styles.AccentText))
	for _, p := range []struct {
		label string
		on    bool
	}{
		{"Animations", m.view.prefs.AnimationsEnabled},
		{"Particles", m.view.prefs.ParticlesEnabled},
		{"Sound", m.view.prefs.SoundEnabled},
	} {
		v, s := onOff(p.on)
		lines = append(lines, row(p.label, v, s))
	}

	return m.renderTitledBox("Stats", strings.Join(lines, "\n"), width, height, true)
}
