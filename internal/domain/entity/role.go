// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleStudent indicates a regular student account.
	RoleStudent Role = "Student"
	// RoleInstructor indicates an instructor who can publish courses.
	RoleInstructor Role = "Instructor"
	// RoleAdmin indicates an administrator who moderates accounts and content.
	RoleAdmin Role = "Admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleFromString converts a string to a Role, reporting whether it is valid.
// Claims coming off the wire must go through this so a typo can never pass
// an authorization check.
func RoleFromString(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
