package chat

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Registry maps session ids to members. Every read and mutation, including
// the socket writes of a broadcast, happens under one mutex, so all members
// observe joins, messages and departures in a single total order.
type Registry struct {
	mu      sync.Mutex
	members map[string]*Member
	order   []string // insertion order of members' keys
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		members: make(map[string]*Member),
		logger:  logger,
	}
}

// Add inserts m under its session id.
func (r *Registry) Add(m *Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(m)
}

// Remove deletes and returns the member registered under sessionID.
func (r *Registry) Remove(sessionID string) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remove(sessionID)
}

// BroadcastExcept writes text to every active member other than sessionID and
// returns the number of successful deliveries. A failed write marks only that
// recipient as departed; delivery to the others continues.
func (r *Registry) BroadcastExcept(sessionID, text string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.broadcastExcept(sessionID, text)
}

// ActiveNames returns the names of active members other than sessionID, in
// registration order.
func (r *Registry) ActiveNames(sessionID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeNames(sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Admit runs the join handshake for a validated member in one critical
// section: insert as connecting, deliver the roster, then activate and
// announce. If the roster cannot be delivered the member is dropped without
// anyone having seen it.
func (r *Registry) Admit(m *Member) error {
	start := time.Now()
	r.mu.Lock()
	defer func() {
		r.mu.Unlock()
		EventProcessingDuration.WithLabelValues("join").Observe(time.Since(start).Seconds())
	}()

	if err := r.add(m); err != nil {
		return err
	}

	roster := rosterPrefix + strings.Join(r.activeNames(m.sessionID), ", ")
	if err := m.out.WriteLine(roster); err != nil {
		if _, rmErr := r.remove(m.sessionID); rmErr != nil {
			return rmErr
		}
		return err
	}

	m.status = StatusActive
	r.logger.Info("member joined", "session", m.sessionID, "name", m.name)
	MessagesTotal.WithLabelValues("join").Inc()
	r.broadcastExcept(m.sessionID, joinedLine(m.name))
	return nil
}

// Say relays a chat message from sessionID to everyone else. A speaker that
// was marked inactive by a failed write can still talk; it just stops
// receiving.
func (r *Registry) Say(sessionID, msg string) error {
	start := time.Now()
	r.mu.Lock()
	defer func() {
		r.mu.Unlock()
		EventProcessingDuration.WithLabelValues("message").Observe(time.Since(start).Seconds())
	}()

	m, ok := r.members[sessionID]
	if !ok {
		r.violation("say from unknown session", sessionID)
		return ErrSessionNotFound
	}
	MessagesTotal.WithLabelValues("message").Inc()
	r.broadcastExcept(sessionID, chatLine(m.name, msg))
	return nil
}

// Leave removes sessionID and, if it was still active, tells the others.
func (r *Registry) Leave(sessionID string) (*Member, error) {
	start := time.Now()
	r.mu.Lock()
	defer func() {
		r.mu.Unlock()
		EventProcessingDuration.WithLabelValues("leave").Observe(time.Since(start).Seconds())
	}()

	m, err := r.remove(sessionID)
	if err != nil {
		return nil, err
	}
	wasActive := m.status == StatusActive
	m.status = StatusDeparted

	if wasActive {
		r.logger.Info("member left", "session", sessionID, "name", m.name)
		MessagesTotal.WithLabelValues("leave").Inc()
		r.broadcastExcept(sessionID, leftLine(m.name))
	}
	return m, nil
}

func (r *Registry) add(m *Member) error {
	if _, exists := r.members[m.sessionID]; exists {
		r.violation("duplicate session insert", m.sessionID)
		return ErrDuplicateSession
	}
	r.members[m.sessionID] = m
	r.order = append(r.order, m.sessionID)
	ConnectedClients.Set(float64(len(r.members)))
	return nil
}

func (r *Registry) remove(sessionID string) (*Member, error) {
	m, ok := r.members[sessionID]
	if !ok {
		r.violation("remove of unknown session", sessionID)
		return nil, ErrSessionNotFound
	}
	delete(r.members, sessionID)
	if i := lo.IndexOf(r.order, sessionID); i >= 0 {
		r.order = append(r.order[:i], r.order[i+1:]...)
	}
	ConnectedClients.Set(float64(len(r.members)))
	return m, nil
}

func (r *Registry) broadcastExcept(sessionID, text string) int {
	delivered := 0
	for _, id := range r.order {
		if id == sessionID {
			continue
		}
		m := r.members[id]
		if m.status != StatusActive {
			continue
		}
		if err := m.out.WriteLine(text); err != nil {
			m.status = StatusDeparted
			WriteFailuresTotal.Inc()
			r.logger.Warn("broadcast write failed, marking member inactive",
				"session", id, "name", m.name, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

func (r *Registry) activeNames(sessionID string) []string {
	return lo.FilterMap(r.order, func(id string, _ int) (string, bool) {
		m := r.members[id]
		return m.name, id != sessionID && m.status == StatusActive
	})
}

func (r *Registry) violation(msg, sessionID string) {
	InvariantViolationsTotal.Inc()
	r.logger.Error("registry invariant violated: "+msg, "session", sessionID)
}
