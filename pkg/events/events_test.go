package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmitReachesWatchers(t *testing.T) {
	m := &Manager{}
	a := m.Watch()
	b := m.Watch()
	defer a.Stop()
	defer b.Stop()

	m.Emit(Progress{Done: 1, Total: 2, Brand: "Apple"})

	assert.Equal(t, Progress{Done: 1, Total: 2, Brand: "Apple"}, <-a.Ch)
	assert.Equal(t, Progress{Done: 1, Total: 2, Brand: "Apple"}, <-b.Ch)
}

func TestEmitAfterStopDoesNotBlock(t *testing.T) {
	m := &Manager{}
	w := m.Watch()

	for i := 0; i < cap(w.Ch); i++ {
		m.Emit(Progress{Done: i})
	}

	finished := make(chan struct{})
	go func() {
		m.Emit(Progress{Done: 99})
		close(finished)
	}()

	w.Stop()
	w.Stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("emit blocked on a stopped watcher")
	}
}

func TestProgressFinished(t *testing.T) {
	assert.False(t, Progress{Done: 1, Total: 2}.Finished())
	assert.True(t, Progress{Done: 2, Total: 2}.Finished())
}
