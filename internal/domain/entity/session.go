package entity

import "strings"

// Role is the kind of account a session belongs to.
type Role string

const (
	// RoleNone marks the absence of a session.
	RoleNone Role = ""
	// RolePublisher is an account that creates and posts articles.
	RolePublisher Role = "publisher"
	// RoleSubscriber is an account that follows publishers and reads a feed.
	RoleSubscriber Role = "subscriber"
)

// ParseRole converts user input into a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RolePublisher:
		return RolePublisher, nil
	case RoleSubscriber:
		return RoleSubscriber, nil
	default:
		return RoleNone, &ValidationError{Field: "role", Message: "must be publisher or subscriber"}
	}
}

// Valid reports whether r is a known, non-empty role.
func (r Role) Valid() bool {
	return r == RolePublisher || r == RoleSubscriber
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// Session is the locally persisted record of the logged-in identity.
// The zero value is the "no session" state: UserID and UserName are unset
// exactly when Role is RoleNone.
type Session struct {
	Role     Role
	UserID   int64
	UserName string
}

// NewSession builds an authenticated session, validating the invariant.
func NewSession(role Role, userID int64, userName string) (Session, error) {
	s := Session{Role: role, UserID: userID, UserName: strings.TrimSpace(userName)}
	if !s.Valid() {
		return Session{}, &ValidationError{Field: "session", Message: "role, user id and user name are all required"}
	}
	return s, nil
}

// Valid reports whether s is a complete authenticated session.
func (s Session) Valid() bool {
	return s.Role.Valid() && s.UserID > 0 && s.UserName != ""
}

// IsZero reports whether s is the "no session" state.
func (s Session) IsZero() bool {
	return s == Session{}
}

// Is reports whether s is authenticated with the given role.
func (s Session) Is(role Role) bool {
	return s.Valid() && s.Role == role
}
