package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lair/internal/catalog"
)

// paneLayout holds the outer widths and heights of the body panes.
type paneLayout struct {
	sidebar      int
	list         int
	detail       int
	listHeight   int
	detailHeight int
	stacked      bool
}

func (m Model) layout() paneLayout {
	h := m.contentHeight()
	width := m.width
	var l paneLayout
	if m.view.session.SidebarOpen && width >= LayoutMinSidebarTotal {
		l.sidebar = LayoutSidebarWidth
		width -= l.sidebar
	}
	if m.width < LayoutCompactWidth {
		l.stacked = true
		l.list = width
		l.detail = width
		l.listHeight = max(h/2, 3)
		l.detailHeight = max(h-l.listHeight, 3)
		return l
	}
	l.list = width * 45 / 100
	l.detail = width - l.list
	l.listHeight = h
	l.detailHeight = h
	return l
}

func (m *Model) resizeDetail() {
	l := m.layout()
	m.detail.Width = max(l.detail-4, 1)
	m.detail.Height = max(l.detailHeight-2, 1)
}

// syncDetail refreshes the detail viewport for the selected dragon.
func (m *Model) syncDetail() {
	if !m.ready {
		return
	}
	m.resizeDetail()
	it, ok := m.selectedItem()
	if !ok {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(m.renderDetailContent(it, m.detail.Width))
	m.detail.GotoTop()
}

// renderMain renders header, body and footer.
func (m Model) renderMain() string {
	var body string
	switch m.section() {
	case SectionStats:
		body = m.renderStats(m.width, m.contentHeight())
	default:
		body = m.renderBrowser()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderCommandBar(),
		m.renderStatusLine(),
	)
}

// renderBrowser renders the list and detail panes with the optional sidebar.
func (m Model) renderBrowser() string {
	l := m.layout()

	title := "Dragons"
	if m.section() == SectionFavorites {
		title = "Favorites"
	}
	title = fmt.Sprintf("%s (%d)", title, len(m.list()))

	listPane := m.renderTitledBox(title, m.renderList(l.list-2, l.listHeight-2), l.list, l.listHeight, true)
	detailPane := m.renderTitledBox("Details", m.renderDetailPane(), l.detail, l.detailHeight, false)

	var main string
	if l.stacked {
		main = lipgloss.JoinVertical(lipgloss.Left, listPane, detailPane)
	} else {
		main = lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
	}
	if l.sidebar == 0 {
		return main
	}
	sidebar := m.renderTitledBox("Filters", m.renderSidebar(l.sidebar-4), l.sidebar, m.contentHeight(), false)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}

// renderList renders the visible window of rows around the selection.
func (m Model) renderList(width, height int) string {
	items := m.list()
	bgColor := m.theme.FocusBg
	if len(items) == 0 {
		return m.renderEmptyList(width, bgColor)
	}

	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}
	end := min(start+height, len(items))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selected
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatRow(items[i], width, rowBg, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEmptyList(width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var msg string
	switch {
	case m.view.session.Loading:
		msg = "Loading catalog..."
		if m.spinning {
			msg = m.spinner.View() + " " + msg
		}
	case m.section() == SectionFavorites:
		msg = "No favorites yet. Press f on a dragon to add it."
	case m.view.catalogSize == 0:
		msg = "The catalog is empty."
	default:
		msg = "No dragons match. Press x to clear filters."
	}
	return bg.FillLine(bg.Render(truncate(msg, width), styles.MutedText), width)
}

// formatRow formats a list row: "★ Name · type [rarity]".
// Selected rows use SelectionText for every segment to keep contrast.
func (m Model) formatRow(it catalog.Item, width int, bgColor string, selected bool) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	nameStyle := styles.Text
	metaStyle := styles.MutedText
	favStyle := styles.FavoriteText
	rarityStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.RarityColors[it.Rarity])).
		Background(lipgloss.Color(bgColor))
	if selected {
		sel := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.SelectionText)).
			Background(lipgloss.Color(bgColor))
		nameStyle = sel.Bold(true)
		metaStyle = sel
		favStyle = sel.Bold(true)
		rarityStyle = sel
	}

	marker := " "
	if m.view.isFavorite(it.ID) {
		marker = "★"
	}
	rarity := string(it.Rarity)
	if m.view.prefs.ParticlesEnabled && it.Rarity == catalog.RarityLegendary {
		rarity = "✦ " + rarity
	}

	// Name gets whatever the fixed segments leave.
	fixed := 2 + 3 + len([]rune(it.Type)) + 1 + len([]rune(rarity))
	name := truncate(it.Name, max(width-fixed, 4))

	return bg.Render(marker, favStyle) + bg.Space() +
		bg.Render(name, nameStyle) +
		bg.Render(" · ", metaStyle) +
		bg.Render(it.Type, metaStyle) + bg.Space() +
		bg.Render(rarity, rarityStyle)
}

func (m Model) renderDetailPane() string {
	if _, ok := m.selectedItem(); !ok {
		styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
		return styles.MutedText.Render("Select a dragon")
	}
	return m.detail.View()
}

// renderDetailContent renders the full record of one dragon.
func (m Model) renderDetailContent(it catalog.Item, width int) string {
	bgColor := m.theme.SurfaceAlt
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var lines []string
	title := bg.Render(it.Name, styles.Text.Bold(true))
	if m.view.isFavorite(it.ID) {
		title += bg.Space() + bg.Render("★ favorite", styles.FavoriteText)
	}
	lines = append(lines, title)
	lines = append(lines,
		bg.Render(titleCase(it.Type), styles.AccentText)+bg.Spaces(2)+
			styles.RarityStyle(it.Rarity).Render(strings.ToUpper(string(it.Rarity))))
	lines = append(lines, "")

	if it.Description != "" {
		wrapped := lipgloss.NewStyle().Width(width).Render(it.Description)
		for _, l := range strings.Split(wrapped, "\n") {
			lines = append(lines, bg.Render(l, styles.Text))
		}
		lines = append(lines, "")
	}

	lines = append(lines, bg.Render("Stats", styles.MutedText.Bold(true)))
	for _, s := range []struct {
		label string
		value int
	}{
		{"Speed", it.Stats.Speed},
		{"Strength", it.Stats.Strength},
		{"Intelligence", it.Stats.Intelligence},
		{"Stealth", it.Stats.Stealth},
	} {
		lines = append(lines,
			bg.Render(padRight(s.label, 13), styles.MutedText)+
				bg.Render(bar(s.value, min(StatBarWidth, max(width-18, 5))), styles.AccentText)+
				bg.Space()+
				bg.Render(fmt.Sprintf("%3d", s.value), styles.Text))
	}

	if len(it.Abilities) > 0 {
		lines = append(lines, "", bg.Render("Abilities", styles.MutedText.Bold(true)))
		for _, a := range it.Abilities {
			style := styles.Text
			if m.view.criteria.HasAbility(a) {
				style = styles.SuccessText
			}
			lines = append(lines, bg.Render("• "+a, style))
		}
	}

	if it.Image != "" {
		lines = append(lines, "", bg.Render("Image", styles.FaintText)+bg.Space()+
			bg.Render(truncate(it.Image, max(width-6, 8)), styles.MutedText))
	}
	return strings.Join(lines, "\n")
}

// renderSidebar lists the active filter criteria and facet counts.
func (m Model) renderSidebar(width int) string {
	bgColor := m.theme.SurfaceAlt
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	c := m.view.criteria

	value := func(v string) string {
		if v == "" || v == "all" {
			return bg.Render("all", styles.FaintText)
		}
		return bg.Render(truncate(v, width-10), styles.AccentText)
	}

	lines := []string{
		bg.Render("Search  ", styles.MutedText) + value(c.Term),
		bg.Render("Type    ", styles.MutedText) + value(c.Category),
		bg.Render("Rarity  ", styles.MutedText) + value(c.Rarity),
		bg.Render("Ability ", styles.MutedText) + value(strings.Join(c.Abilities, ", ")),
		"",
		bg.Render("Catalog", styles.MutedText.Bold(true)),
	}
	for _, r := range catalog.Rarities() {
		lines = append(lines,
			bg.Render(padRight(titleCase(string(r)), 10), styles.Text)+
				bg.Render(fmt.Sprintf("%3d", m.view.rarities[r]), styles.MutedText))
	}
	lines = append(lines,
		bg.Render(padRight("Shown", 10), styles.Text)+
			bg.Render(fmt.Sprintf("%3d", len(m.view.items)), styles.MutedText),
		bg.Render(padRight("Favorites", 10), styles.Text)+
			bg.Render(fmt.Sprintf("%3d", m.view.favoriteCount()), styles.FavoriteText))
	return strings.Join(lines, "\n")
}

// renderTitledBox renders content in a box with the title embedded in the top border.
//
//	┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)
	padded := make([]string, 0, boxHeight)
	for i := range boxHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		padded = append(padded,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}
	return topBorder + "\n" + strings.Join(padded, "\n") + "\n" + bottomBorder
}
