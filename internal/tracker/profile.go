package tracker

import "time"

// Role represents the staff role attached to a user profile
type Role int

const (
	RoleUnknown Role = iota
	RoleTeacher
	RoleAdmin
	RolePrincipal
)

// String returns the string representation of the role
func (r Role) String() string {
	switch r {
	case RoleTeacher:
		return "teacher"
	case RoleAdmin:
		return "admin"
	case RolePrincipal:
		return "principal"
	default:
		return "unknown"
	}
}

// ParseRole parses a string to Role
func ParseRole(s string) Role {
	switch s {
	case "teacher":
		return RoleTeacher
	case "admin":
		return RoleAdmin
	case "principal":
		return RolePrincipal
	default:
		return RoleUnknown
	}
}

// Profile represents the local shape of a signed-in user.
//
// UID is always present when a Profile is built from a real session.
// Email and DisplayName may be empty. Role, SchoolID and the timestamps
// are never populated by the session mapping; they are hydrated from the
// users collection by the user-management layer.
type Profile struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        Role      `json:"role,omitempty"`
	SchoolID    string    `json:"school_id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	LastLoginAt time.Time `json:"last_login_at,omitempty"`
}
