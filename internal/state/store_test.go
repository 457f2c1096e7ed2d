package state

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lair/internal/filter"
)

func TestStore_DispatchAndSelectors(t *testing.T) {
	st := New(Default())

	st.Dispatch(LoadCatalog{Items: fixture()})
	st.Dispatch(ToggleFavorite{ID: "skrill"})
	st.Dispatch(SetTheme{Theme: ThemeDark})

	assert.Len(t, st.FilteredView(), 5)
	assert.Len(t, st.Catalog(), 5)
	assert.True(t, st.IsFavorite("skrill"))
	assert.False(t, st.IsFavorite("gronckle"))
	assert.Equal(t, 1, st.FavoriteCount())
	assert.Equal(t, []string{"skrill"}, st.FavoriteIDs())
	assert.Equal(t, ThemeDark, st.Theme())
	assert.Equal(t, uint64(3), st.Version())

	it, ok := st.Item("skrill")
	require.True(t, ok)
	assert.Equal(t, "Skrill", it.Name)

	favs := st.Favorites()
	require.Len(t, favs, 1)
	assert.Equal(t, "skrill", favs[0].ID)
}

func TestStore_SelectorsReturnCopies(t *testing.T) {
	st := New(Default())
	st.Dispatch(LoadCatalog{Items: fixture()})

	view := st.FilteredView()
	view[0].Name = "mutated"
	view[0].Abilities[0] = "mutated"

	again := st.FilteredView()
	assert.Equal(t, "Deadly Nadder", again[0].Name)
	assert.Equal(t, "Spine Shot", again[0].Abilities[0])

	st.Dispatch(ErrorMessage("boom"))
	sess := st.Session()
	*sess.Error = "changed"
	assert.Equal(t, "boom", st.Session().ErrorText())
}

func TestStore_DispatchOrderingMatchesSequentialTransitions(t *testing.T) {
	a1 := UpdateFilter{Patch: patchTerm("storm")}
	a2 := ClearFilters{}

	st := New(Transition(Default(), LoadCatalog{Items: fixture()}))
	st.Dispatch(a1)
	st.Dispatch(a2)

	want := Transition(Transition(Transition(Default(), LoadCatalog{Items: fixture()}), a1), a2)
	reversed := Transition(Transition(Transition(Default(), LoadCatalog{Items: fixture()}), a2), a1)

	assert.Equal(t, ids(want.Filtered), ids(st.FilteredView()))
	assert.True(t, want.Criteria.Equal(st.Criteria()))
	assert.False(t, reversed.Criteria.Equal(st.Criteria()))
}

func TestStore_ListenersSeePrevAndNextInOrder(t *testing.T) {
	st := New(Default())

	var seen []string
	unsubscribe := st.Subscribe(func(prev, next State) {
		seen = append(seen, next.Session.CurrentSection)
		assert.NotEqual(t, prev.Session.CurrentSection, next.Session.CurrentSection)
	})

	st.Dispatch(SetCurrentSection{Section: "about"})
	st.Dispatch(SetCurrentSection{Section: "dragons"})
	unsubscribe()
	unsubscribe() // idempotent
	st.Dispatch(SetCurrentSection{Section: "contact"})

	assert.Equal(t, []string{"about", "dragons"}, seen)
}

func TestStore_MultipleListenersCalledInSubscriptionOrder(t *testing.T) {
	st := New(Default())
	var calls []int
	st.Subscribe(func(_, _ State) { calls = append(calls, 1) })
	st.Subscribe(func(_, _ State) { calls = append(calls, 2) })
	st.Dispatch(ToggleSidebar{})
	assert.Equal(t, []int{1, 2}, calls)
}

func TestStore_NilActionIsLoggedAndIgnored(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	st := New(Default(), WithLogger(logger))

	st.Dispatch(nil)

	assert.Equal(t, uint64(0), st.Version())
	assert.Contains(t, buf.String(), "nil action")
}

func TestStore_CloseIgnoresLaterDispatches(t *testing.T) {
	var buf bytes.Buffer
	st := New(Default(), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	called := false
	st.Subscribe(func(_, _ State) { called = true })

	st.Dispatch(ToggleSidebar{})
	require.True(t, called)
	called = false

	st.Close()
	st.Dispatch(ToggleSidebar{})

	assert.False(t, called)
	assert.True(t, st.Session().SidebarOpen, "state frozen at close")
	assert.Contains(t, buf.String(), "toggle_sidebar")
}

func TestStore_ConcurrentDispatchers(t *testing.T) {
	st := New(Default())
	st.Dispatch(LoadCatalog{Items: fixture()})

	var versions []uint64
	var mu sync.Mutex
	st.Subscribe(func(_, _ State) {
		mu.Lock()
		versions = append(versions, uint64(len(versions)))
		mu.Unlock()
	})

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				st.Dispatch(RecordTimeSpent{Seconds: 1})
				_ = st.FilteredView()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, st.Stats().TimeSpent)
	assert.Len(t, versions, workers*perWorker)
	assert.Equal(t, uint64(workers*perWorker+1), st.Version())
}

func TestStore_NewIndexesSeededCatalog(t *testing.T) {
	seed := Default()
	seed.Catalog = fixture()
	st := New(seed)
	st.Dispatch(RecordItemViewed{ID: "gronckle"})
	assert.Equal(t, 1, st.Stats().DragonsViewed)
}

func TestStore_NewNormalisesZeroState(t *testing.T) {
	st := New(State{Catalog: fixture()})
	assert.Equal(t, filter.Empty(), st.Criteria())
	assert.Equal(t, ids(fixture()), ids(st.FilteredView()))

	st.Dispatch(UpdateFilter{Patch: filter.Patch{Term: filter.String("")}})
	assert.Len(t, st.FilteredView(), len(fixture()))
}

func TestStore_Persisted(t *testing.T) {
	st := New(Default())
	st.Dispatch(ToggleFavorite{ID: "a"})
	st.Dispatch(SetTheme{Theme: ThemeLight})

	p := st.Persisted()
	assert.Equal(t, ThemeLight, p.Theme)
	assert.Equal(t, []string{"a"}, p.Favorites)
}
