package chat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"
)

// SessionConfig bounds the per-connection behaviour of a session.
type SessionConfig struct {
	WriteTimeout time.Duration
	NameTimeout  time.Duration
	Names        NameValidator
}

// HandleSession owns conn for its whole lifetime: it registers the peer,
// relays its lines until the connection fails, and closes it on return.
func HandleSession(conn net.Conn, sessionID string, reg *Registry, cfg SessionConfig, logger *slog.Logger) {
	defer func() {
		_ = conn.Close()
	}()

	log := logger.With("session", sessionID)
	out := NewConnWriter(conn, cfg.WriteTimeout)
	reader := bufio.NewReader(conn)

	m, err := register(conn, reader, out, sessionID, reg, cfg)
	if err != nil {
		if errors.Is(err, ErrNameInvalid) {
			MessagesTotal.WithLabelValues("rejected").Inc()
		}
		log.Info("registration aborted", "error", err)
		return
	}
	log = log.With("name", m.name)

	// Main input loop.
	for {
		line, err := readLine(reader)
		if err == nil {
			line = strings.TrimSpace(line)
			if line == "" {
				err = errEmptyLine
			}
		}
		if err != nil {
			log.Info("session ended", "error", err)
			break
		}

		if err := reg.Say(sessionID, line); err != nil {
			log.Info("session ended", "error", err)
			break
		}
	}

	if _, err := reg.Leave(sessionID); err != nil {
		log.Error("failed to remove member", "error", err)
	}
}

var errEmptyLine = errors.New("empty line")

// register drives the name handshake. On success the member is active and
// the room has been told about it.
func register(conn net.Conn, reader *bufio.Reader, out LineWriter, sessionID string, reg *Registry, cfg SessionConfig) (*Member, error) {
	if err := out.WriteLine(welcomePrompt); err != nil {
		return nil, fmt.Errorf("send prompt: %w", err)
	}

	if cfg.NameTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(cfg.NameTimeout)); err != nil {
			return nil, fmt.Errorf("set read deadline: %w", err)
		}
	}
	line, err := readLine(reader)
	if err != nil {
		return nil, fmt.Errorf("read name: %w", err)
	}
	if cfg.NameTimeout > 0 {
		if err := conn.SetReadDeadline(time.Time{}); err != nil {
			return nil, fmt.Errorf("clear read deadline: %w", err)
		}
	}

	name, err := cfg.Names.Validate(line)
	if err != nil {
		return nil, err
	}

	m := NewMember(sessionID, name, out)
	if err := reg.Admit(m); err != nil {
		return nil, fmt.Errorf("admit %q: %w", name, err)
	}
	return m, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == nil {
		return line, nil
	}
	if err == io.EOF && line != "" {
		// last line without newline
		return line, nil
	}
	if err == io.EOF {
		return "", io.EOF
	}
	return "", fmt.Errorf("read: %w", err)
}
