package domain

// SessionState state of the upstream session held by a client.
type SessionState int

const (
	// SessionUnauthenticated no session established (initial state).
	SessionUnauthenticated SessionState = iota
	// SessionAuthenticated login succeeded and no logout happened since.
	SessionAuthenticated
)

// String returns the string representation.
func (s SessionState) String() string {
	switch s {
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}
