package cmd

import (
	"bytes"
	"testing"

	"github.com/BitPonyLLC/logohue/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestShowProgressDrainsBufferedEvents(t *testing.T) {
	manager := &events.Manager{}
	watcher := manager.Watch()
	defer watcher.Stop()

	for i := 1; i <= 3; i++ {
		manager.Emit(events.Progress{Done: i, Total: 3})
	}
	// a worker reporting after a faster one
	manager.Emit(events.Progress{Done: 2, Total: 3})

	done := make(chan struct{})
	close(done)

	var buf bytes.Buffer
	showProgress(watcher, done, &buf)
	assert.Equal(t, "\ranalysed 1/3\ranalysed 2/3\ranalysed 3/3\n", buf.String())
}
