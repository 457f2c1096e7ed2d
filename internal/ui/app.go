package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lair/internal/catalog"
	"github.com/five82/lair/internal/filter"
	"github.com/five82/lair/internal/state"
)

// Sections the browser can show.
const (
	SectionCatalog   = state.DefaultSection
	SectionFavorites = "favorites"
	SectionStats     = "stats"
)

var sectionOrder = []string{SectionCatalog, SectionFavorites, SectionStats}

// Options configures the UI.
type Options struct {
	Store  *state.Store
	Logger *slog.Logger

	// SearchDebounce delays search dispatches while typing.
	SearchDebounce time.Duration

	// Bell receives the terminal bell when sound is enabled.
	Bell io.Writer

	// DarkBackground overrides terminal background detection.
	DarkBackground *bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store    *state.Store
	logger   *slog.Logger
	keys     keyMap
	debounce time.Duration
	bell     io.Writer
	watch    *storeWatch

	// Store projection
	view viewModel

	// UI state
	theme    Theme
	dark     bool
	width    int
	height   int
	ready    bool
	selected int

	showHelp bool
	modal    Modal

	searchActive bool
	searchInput  textinput.Model
	searchSeq    int

	detail   viewport.Model
	spinner  spinner.Model
	spinning bool

	viewed map[string]struct{}
}

// New creates a new Bubble Tea model over store.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := opts.SearchDebounce
	if debounce <= 0 {
		debounce = SearchDebounce
	}
	bell := opts.Bell
	if bell == nil {
		bell = os.Stderr
	}
	var dark bool
	if opts.DarkBackground != nil {
		dark = *opts.DarkBackground
	} else {
		dark = lipgloss.HasDarkBackground()
	}

	ti := textinput.New()
	ti.Placeholder = "Search dragons..."
	ti.Prompt = "/"
	ti.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		store:       opts.Store,
		logger:      logger,
		keys:        DefaultKeyMap(),
		debounce:    debounce,
		bell:        bell,
		dark:        dark,
		searchInput: ti,
		spinner:     sp,
		detail:      viewport.New(0, 0),
		viewed:      make(map[string]struct{}),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.watch.wait(), m.spinnerCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeDetail()
		m.syncDetail()
		return m, nil

	case storeChangedMsg:
		m.refresh()
		return m, tea.Batch(m.watch.wait(), m.spinnerCmd())

	case searchDebounceMsg:
		if msg.seq == m.searchSeq {
			m.applyTerm(msg.term)
		}
		return m, nil

	case applyAbilitiesMsg:
		m.dispatch(state.UpdateFilter{Patch: filter.Patch{Abilities: filter.Strings(msg.abilities...)}})
		return m, nil

	case spinner.TickMsg:
		if !m.shouldSpin() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	if m.searchActive {
		return m.handleSearchKey(msg)
	}

	view := m.view
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchActive = true
		m.searchInput.SetValue(view.criteria.Term)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleCategory):
		next := filter.Next(view.criteria.Category, view.types)
		m.dispatch(state.UpdateFilter{Patch: filter.Patch{Category: filter.String(next)}})
		return m, nil

	case key.Matches(msg, m.keys.CycleRarity):
		next := filter.Next(view.criteria.Rarity, rarityNames())
		m.dispatch(state.UpdateFilter{Patch: filter.Patch{Rarity: filter.String(next)}})
		return m, nil

	case key.Matches(msg, m.keys.Abilities):
		m.modal = newAbilityPicker(view.abilities, view.criteria.Abilities)
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.searchSeq++
		m.searchInput.SetValue("")
		m.dispatch(state.ClearFilters{})
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		return m, m.toggleFavorite()

	case key.Matches(msg, m.keys.CycleTheme):
		m.dispatch(state.SetTheme{Theme: view.prefs.Theme.Next()})
		return m, nil

	case key.Matches(msg, m.keys.Sidebar):
		m.dispatch(state.ToggleSidebar{})
		return m, nil

	case key.Matches(msg, m.keys.Section):
		m.dispatch(state.SetCurrentSection{Section: nextSection(view.session.CurrentSection)})
		m.selected = 0
		m.syncDetail()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if view.session.Error != nil {
			m.dispatch(state.ClearError())
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleAnimations):
		m.dispatch(state.UpdatePreferences{Patch: state.PreferencesPatch{
			AnimationsEnabled: state.Bool(!view.prefs.AnimationsEnabled),
		}})
		return m, m.spinnerCmd()

	case key.Matches(msg, m.keys.ToggleParticles):
		m.dispatch(state.UpdatePreferences{Patch: state.PreferencesPatch{
			ParticlesEnabled: state.Bool(!view.prefs.ParticlesEnabled),
		}})
		return m, nil

	case key.Matches(msg, m.keys.ToggleSound):
		m.dispatch(state.UpdatePreferences{Patch: state.PreferencesPatch{
			SoundEnabled: state.Bool(!view.prefs.SoundEnabled),
		}})
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.selected + 1)
	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.selected - 1)
	case key.Matches(msg, m.keys.Top):
		m.moveTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(len(m.list()) - 1)
	case key.Matches(msg, m.keys.PageDown):
		m.moveTo(m.selected + m.pageSize())
	case key.Matches(msg, m.keys.PageUp):
		m.moveTo(m.selected - m.pageSize())
	case key.Matches(msg, m.keys.Confirm):
		m.markViewed()
	}

	return m, nil
}

// handleSearchKey handles keyboard input while the search box is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		term := m.searchInput.Value()
		m.closeSearch()
		m.applyTerm(term)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.closeSearch()
		m.searchInput.SetValue(m.view.criteria.Term)
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	after := m.searchInput.Value()
	if after == before {
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, debounceSearchCmd(m.searchSeq, after, m.debounce))
}

func (m *Model) closeSearch() {
	m.searchActive = false
	m.searchSeq++ // drop pending debounced terms
	m.searchInput.Blur()
}

func (m *Model) applyTerm(term string) {
	if term == m.view.criteria.Term {
		return
	}
	m.dispatch(state.UpdateFilter{Patch: filter.Patch{Term: filter.String(term)}})
}

func (m *Model) toggleFavorite() tea.Cmd {
	it, ok := m.selectedItem()
	if !ok {
		return nil
	}
	adding := !m.view.isFavorite(it.ID)
	m.dispatch(state.ToggleFavorite{ID: it.ID})
	if adding && m.view.prefs.SoundEnabled {
		return m.ringBell()
	}
	return nil
}

func (m Model) ringBell() tea.Cmd {
	w := m.bell
	return func() tea.Msg {
		_, _ = io.WriteString(w, "\a")
		return nil
	}
}

// dispatch sends an action and re-reads the store so the model reflects it
// before the next render.
func (m *Model) dispatch(a state.Action) {
	if m.store == nil {
		return
	}
	m.logger.Debug("ui dispatch", "action", a.Name())
	m.store.Dispatch(a)
	m.refresh()
}

// refresh re-projects the store and keeps the selection on the same dragon
// when it is still listed.
func (m *Model) refresh() {
	var selectedID string
	if it, ok := m.selectedItem(); ok {
		selectedID = it.ID
	}

	if m.store != nil {
		m.view = state.Select(m.store, buildView)
	}
	m.theme = ThemeFor(m.view.prefs.Theme, m.dark)

	items := m.list()
	switch {
	case len(items) == 0:
		m.selected = 0
	case selectedID != "":
		if i := slices.IndexFunc(items, func(it catalog.Item) bool { return it.ID == selectedID }); i >= 0 {
			m.selected = i
		} else if m.selected >= len(items) {
			m.selected = len(items) - 1
		}
	case m.selected >= len(items):
		m.selected = len(items) - 1
	}
	m.syncDetail()
}

// moveTo moves the cursor, then records scroll progress and the view.
func (m *Model) moveTo(idx int) {
	items := m.list()
	if len(items) == 0 {
		return
	}
	idx = min(max(idx, 0), len(items)-1)
	if idx == m.selected {
		return
	}
	m.selected = idx
	ratio := 0.0
	if len(items) > 1 {
		ratio = float64(idx) / float64(len(items)-1)
	}
	m.dispatch(state.SetScrollProgress{Ratio: ratio})
	m.markViewed()
}

// markViewed counts the selected dragon once per session.
func (m *Model) markViewed() {
	it, ok := m.selectedItem()
	if !ok {
		return
	}
	if _, seen := m.viewed[it.ID]; seen {
		return
	}
	m.viewed[it.ID] = struct{}{}
	m.dispatch(state.RecordItemViewed{ID: it.ID})
}

func (m Model) section() string {
	s := m.view.session.CurrentSection
	if slices.Contains(sectionOrder, s) {
		return s
	}
	return SectionCatalog
}

func nextSection(current string) string {
	i := slices.Index(sectionOrder, current)
	if i < 0 {
		i = 0
	}
	return sectionOrder[(i+1)%len(sectionOrder)]
}

// list returns the dragons shown by the current section.
func (m Model) list() []catalog.Item {
	switch m.section() {
	case SectionFavorites:
		return m.view.favorites
	case SectionStats:
		return nil
	default:
		return m.view.items
	}
}

func (m Model) selectedItem() (catalog.Item, bool) {
	items := m.list()
	if m.selected < 0 || m.selected >= len(items) {
		return catalog.Item{}, false
	}
	return items[m.selected], true
}

func (m Model) pageSize() int {
	return max(m.contentHeight()-2, 1)
}

func (m Model) contentHeight() int {
	return max(m.height-3, 3) // header, command bar, status line
}

func (m Model) shouldSpin() bool {
	return m.view.session.Loading && m.view.prefs.AnimationsEnabled
}

func (m *Model) spinnerCmd() tea.Cmd {
	if m.spinning || !m.shouldSpin() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func rarityNames() []string {
	rs := catalog.Rarities()
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// Run starts the Bubble Tea program and blocks until it exits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return errors.New("ui: store is required")
	}
	m := New(opts)
	m.watch = watchStore(opts.Store)
	defer m.watch.stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
