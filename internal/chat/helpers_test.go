package chat

import (
	"io"
	"log/slog"
	"sync"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// transcript records writes across several writers in the order they happened.
type transcript struct {
	mu      sync.Mutex
	entries []string
}

func (t *transcript) record(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, s)
}

func (t *transcript) Entries() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.entries...)
}

type fakeWriter struct {
	owner string
	log   *transcript

	mu    sync.Mutex
	lines []string
	err   error
}

func (w *fakeWriter) WriteLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.lines = append(w.lines, line)
	if w.log != nil {
		w.log.record(w.owner + " <- " + line)
	}
	return nil
}

func (w *fakeWriter) Lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.lines...)
}

func (w *fakeWriter) fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}
