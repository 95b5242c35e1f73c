//go:generate go run go.uber.org/mock/mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks

package chat

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// LineWriter is the shared write side of a connection. Any goroutine holding
// a Member may use it; reading and closing stay with the owning session.
type LineWriter interface {
	WriteLine(line string) error
}

// connWriter writes newline-terminated lines to a connection, bounding each
// write with a deadline so a stalled peer cannot hold the registry forever.
type connWriter struct {
	mu      sync.Mutex
	conn    net.Conn
	timeout time.Duration
}

func NewConnWriter(conn net.Conn, timeout time.Duration) LineWriter {
	return &connWriter{conn: conn, timeout: timeout}
}

func (w *connWriter) WriteLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timeout > 0 {
		if err := w.conn.SetWriteDeadline(time.Now().Add(w.timeout)); err != nil {
			return fmt.Errorf("set write deadline: %w", err)
		}
	}
	if _, err := w.conn.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
