package monitor

import (
	"bytes"
	"sync"
)

// cappedWriter accumulates subprocess output up to a byte cap. Writes past
// the cap report success while discarding the data, so the subprocess never
// blocks on a full pipe and can still be waited on to completion.
type cappedWriter struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	max       int64
	written   int64
	truncated bool
}

// newCappedWriter creates a writer that keeps at most max bytes
func newCappedWriter(max int64) *cappedWriter {
	return &cappedWriter{max: max}
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(p)

	if w.written >= w.max {
		w.truncated = true
		return n, nil
	}

	remaining := w.max - w.written
	if int64(n) > remaining {
		w.truncated = true
		p = p[:remaining]
	}

	written, err := w.buf.Write(p)
	w.written += int64(written)
	if err != nil {
		return written, err
	}

	// Report the full length so the copier never sees a short write
	return n, nil
}

// String returns the accumulated output
func (w *cappedWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

// Len returns how many bytes were retained
func (w *cappedWriter) Len() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Truncated reports whether output past the cap was discarded
func (w *cappedWriter) Truncated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.truncated
}
