package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the title bar: logo, section tabs and counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	tabs := make([]string, 0, len(sectionOrder))
	for _, s := range sectionOrder {
		label := titleCase(s)
		if s == m.section() {
			tabs = append(tabs, bg.Render("["+label+"]", styles.AccentText.Bold(true)))
		} else {
			tabs = append(tabs, bg.Render(label, styles.MutedText))
		}
	}

	parts := []string{
		bg.Render("lair", styles.Logo),
		bg.Join(tabs, " "),
		bg.Render(fmt.Sprintf("%d/%d dragons", len(m.view.items), m.view.catalogSize), styles.Text),
		bg.Render(fmt.Sprintf("★ %d", m.view.favoriteCount()), styles.FavoriteText),
	}
	if m.view.criteria.Active() {
		parts = append(parts, bg.Render("filtered", styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar shows the search box while typing, otherwise key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.searchActive {
		hint := bg.Render("enter apply · esc cancel", styles.FaintText)
		return styles.Header.Width(m.width).Render(m.searchInput.View() + bg.Spaces(2) + hint)
	}

	bindings := []key.Binding{
		m.keys.Search, m.keys.CycleCategory, m.keys.CycleRarity, m.keys.Abilities,
		m.keys.Favorite, m.keys.Section, m.keys.CycleTheme,
	}
	bindings = append(bindings, m.keys.ShortHelp()...)

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints,
			bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(strings.ToLower(h.Desc), styles.MutedText))
	}
	line := bg.Join(hints, "  ")
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(line)
}

// renderStatusLine shows errors, loading state and the active preferences.
func (m Model) renderStatusLine() string {
	bgColor := m.theme.Background
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var left string
	switch {
	case m.view.session.Error != nil:
		left = bg.Render("✗ "+m.view.session.ErrorText(), styles.DangerText) +
			bg.Space() + bg.Render("(esc to dismiss)", styles.FaintText)
	case m.view.session.Loading:
		msg := "Loading catalog..."
		if m.spinning {
			msg = m.spinner.View() + " " + msg
		}
		left = bg.Render(msg, styles.WarningText)
	default:
		left = bg.Render(fmt.Sprintf("%3.0f%%", m.view.session.ScrollProgress*100), styles.MutedText)
	}

	flag := func(label string, on bool) string {
		if on {
			return bg.Render(label, styles.SuccessText)
		}
		return bg.Render(label, styles.FaintText)
	}
	right := bg.Join([]string{
		bg.Render(string(m.view.prefs.Theme), styles.AccentText),
		flag("anim", m.view.prefs.AnimationsEnabled),
		flag("fx", m.view.prefs.ParticlesEnabled),
		flag("sound", m.view.prefs.SoundEnabled),
	}, " ")

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	line := bg.Space() + left + bg.Spaces(gap) + right + bg.Space()
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Width(m.width).
		MaxWidth(m.width).
		Render(line)
}
