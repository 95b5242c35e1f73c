package chat

// Status is the lifecycle state of a Member. It is only read or changed while
// holding the Registry lock.
type Status int

const (
	StatusConnecting Status = iota
	StatusActive
	// StatusDeparted marks a member that left, or whose last write failed.
	// Departed members never receive broadcasts.
	StatusDeparted
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusActive:
		return "active"
	case StatusDeparted:
		return "departed"
	default:
		return "unknown"
	}
}

// Member is the registry record of one session.
type Member struct {
	sessionID string
	name      string
	status    Status
	out       LineWriter
}

func NewMember(sessionID, name string, out LineWriter) *Member {
	return &Member{
		sessionID: sessionID,
		name:      name,
		status:    StatusConnecting,
		out:       out,
	}
}

func (m *Member) SessionID() string { return m.sessionID }
func (m *Member) Name() string      { return m.name }

// Protocol lines, without the trailing newline.
const (
	welcomePrompt = "Welcome to budgetchat! What shall I call you?"
	rosterPrefix  = "* The room contains: "
)

func joinedLine(name string) string { return "* " + name + " has entered the room" }
func leftLine(name string) string   { return "* " + name + " has left the room" }
func chatLine(name, msg string) string {
	return "[" + name + "] " + msg
}

var (
	ErrNameInvalid      = errorString("name_invalid")
	ErrDuplicateSession = errorString("duplicate_session")
	ErrSessionNotFound  = errorString("session_not_found")
)

type errorString string

func (e errorString) Error() string { return string(e) }
