package events

// Event is an interface to allow any kind of message to be produced to
// Watchers.
type Event interface{}

// Progress is emitted each time a logo of a corpus run has been resolved.
type Progress struct {
	Done  int
	Total int
	Brand string
	Err   error
}

// Finished reports whether this was the last logo of the run.
func (p Progress) Finished() bool {
	return p.Done >= p.Total
}

// Watcher is the type used to process Events that have been emitted on the Ch
// channel.
type Watcher struct {
	Ch chan Event

	done chan struct{}
	stop func(*Watcher)
}

// Stop will unregister a Watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stop(w)
}
