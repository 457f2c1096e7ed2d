package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is an overlay that takes over key handling until it reports done.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (next Modal, cmd tea.Cmd, done bool)
	View(theme Theme, width, height int) string
}

// abilityPicker is a modal checklist of every ability in the catalog.
type abilityPicker struct {
	options  []string
	selected map[string]bool
	cursor   int
}

func newAbilityPicker(options, active []string) *abilityPicker {
	p := &abilityPicker{
		options:  slices.Clone(options),
		selected: make(map[string]bool, len(active)),
	}
	for _, a := range active {
		p.selected[a] = true
	}
	return p
}

// chosen returns the checked abilities in option order.
func (p *abilityPicker) chosen() []string {
	out := make([]string, 0, len(p.selected))
	for _, o := range p.options {
		if p.selected[o] {
			out = append(out, o)
		}
	}
	return out
}

func (p *abilityPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Quit):
		return p, nil, true
	case key.Matches(km, keys.Confirm):
		abilities := p.chosen()
		return p, func() tea.Msg { return applyAbilitiesMsg{abilities: abilities} }, true
	case key.Matches(km, keys.Toggle):
		if p.cursor < len(p.options) {
			o := p.options[p.cursor]
			p.selected[o] = !p.selected[o]
		}
	case key.Matches(km, keys.ClearFilters):
		clear(p.selected)
	case key.Matches(km, keys.Down):
		p.cursor = min(p.cursor+1, max(len(p.options)-1, 0))
	case key.Matches(km, keys.Up):
		p.cursor = max(p.cursor-1, 0)
	case key.Matches(km, keys.Top):
		p.cursor = 0
	case key.Matches(km, keys.Bottom):
		p.cursor = max(len(p.options)-1, 0)
	}
	return p, nil, false
}

func (p *abilityPicker) View(theme Theme, width, height int) string {
	bgColor := theme.SurfaceAlt
	styles := theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	boxWidth := min(max(width/2, 36), max(width-4, 10))
	inner := boxWidth - 4
	visible := max(height-10, 3)

	lines := []string{
		bg.Render("Filter by ability", styles.Text.Bold(true)),
		bg.Render("space toggle · enter apply · x none · esc cancel", styles.FaintText),
		"",
	}
	if len(p.options) == 0 {
		lines = append(lines, bg.Render("No abilities in the catalog.", styles.MutedText))
	}

	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	end := min(start+visible, len(p.options))
	for i := start; i < end; i++ {
		o := p.options[i]
		box := "[ ]"
		if p.selected[o] {
			box = "[x]"
		}
		text := truncate(box+" "+o, inner)
		if i == p.cursor {
			lines = append(lines, lipgloss.NewStyle().
				Background(lipgloss.Color(theme.SelectionBg)).
				Foreground(lipgloss.Color(theme.SelectionText)).
				Width(inner).
				Render(text))
			continue
		}
		style := styles.Text
		if p.selected[o] {
			style = styles.SuccessText
		}
		lines = append(lines, bg.FillLine(bg.Render(text, style), inner))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Background(lipgloss.Color(bgColor)).
		Padding(0, 1).
		Width(boxWidth).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(theme.Background)))
}
