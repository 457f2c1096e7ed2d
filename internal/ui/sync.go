package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lair/internal/state"
)

// Messages

type storeChangedMsg struct{}

type searchDebounceMsg struct {
	seq  int
	term string
}

type applyAbilitiesMsg struct {
	abilities []string
}

// storeWatch turns store notifications into Bubble Tea messages. The
// listener runs on whichever goroutine dispatched, so it only does a
// non-blocking send; bursts of dispatches collapse into one message.
type storeWatch struct {
	changes     chan struct{}
	done        chan struct{}
	unsubscribe func()
	once        sync.Once
}

func watchStore(store *state.Store) *storeWatch {
	w := &storeWatch{
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.unsubscribe = store.Subscribe(func(_, _ state.State) {
		select {
		case w.changes <- struct{}{}:
		default:
		}
	})
	return w
}

// wait blocks until the store changes or the watch is stopped.
func (w *storeWatch) wait() tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-w.changes:
			return storeChangedMsg{}
		case <-w.done:
			return nil
		}
	}
}

func (w *storeWatch) stop() {
	w.once.Do(func() {
		w.unsubscribe()
		close(w.done)
	})
}

// Commands

func debounceSearchCmd(seq int, term string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, term: term}
	})
}
