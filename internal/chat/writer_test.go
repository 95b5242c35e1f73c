package chat

import (
	"bufio"
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnWriter_WritesLine(t *testing.T) {
	req := require.New(t)
	server, client := net.Pipe()
	t.Cleanup(func() { _ = server.Close(); _ = client.Close() })

	w := NewConnWriter(server, time.Second)
	errCh := make(chan error, 1)
	go func() { errCh <- w.WriteLine("[alice] hi") }()

	line, err := bufio.NewReader(client).ReadString('\n')
	req.NoError(err)
	req.Equal("[alice] hi\n", line)
	req.NoError(<-errCh)
}

func TestConnWriter_DeadlineBoundsStalledPeer(t *testing.T) {
	req := require.New(t)
	server, client := net.Pipe()
	t.Cleanup(func() { _ = server.Close(); _ = client.Close() })

	// Given a peer that never reads
	timeout := 50 * time.Millisecond
	w := NewConnWriter(server, timeout)

	// When a line is written
	start := time.Now()
	err := w.WriteLine("* bob has entered the room")

	// Then the write fails once the deadline passes instead of blocking
	req.Error(err)
	req.True(errors.Is(err, os.ErrDeadlineExceeded), "unexpected error %v", err)
	req.Less(time.Since(start), time.Second)
}
