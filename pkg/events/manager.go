package events

import (
	"sync"
)

// Manager fans events out to every registered Watcher.
type Manager struct {
	watchers sync.Map
}

// Watch registers a new Watcher. The caller must Stop it when done reading.
func (m *Manager) Watch() *Watcher {
	watcher := &Watcher{
		Ch:   make(chan Event, 16),
		done: make(chan struct{}),
		stop: m.Stop,
	}

	m.watchers.Store(watcher, watcher)
	return watcher
}

// Emit delivers event to every watcher, waiting on slow readers unless they
// have been stopped.
func (m *Manager) Emit(event Event) {
	m.watchers.Range(func(_, value any) bool {
		watcher := value.(*Watcher)
		select {
		case watcher.Ch <- event:
		case <-watcher.done:
		}
		return true
	})
}

// Stop unregisters watcher. Its Ch is left open so that an in-flight Emit
// never sends on a closed channel.
func (m *Manager) Stop(watcher *Watcher) {
	if _, loaded := m.watchers.LoadAndDelete(watcher); loaded {
		close(watcher.done)
	}
}
