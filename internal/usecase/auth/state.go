package auth

// State is the controller's authentication state.
type State int

const (
	// Unauthenticated means no session is active.
	Unauthenticated State = iota
	// Authenticating means a login is waiting for the remote service.
	Authenticating
	// Authenticated means a session is active; see Controller.Session for the role.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
