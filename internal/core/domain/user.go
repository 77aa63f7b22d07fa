package domain

import "time"

// Role is the closed set of actor roles used for access control decisions.
type Role string

const (
	RoleNurse   Role = "nurse"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ParseRole converts a raw string into a Role, rejecting anything outside
// the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleNurse, RoleDoctor, RolePatient:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the principal decoded from a verified token. It is re-derived
// on every request; authorization decisions are never cached.
type Identity struct {
	Username string
	Role     Role
}
