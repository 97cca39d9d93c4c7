// Package entity contains the core business objects of the project.
package entity

// Status represents the approval state of a user account. It is independent
// of the role and gates whether the account may complete authentication.
type Status string

const (
	// StatusPending indicates an account awaiting review.
	StatusPending Status = "Pending"
	// StatusApproved indicates an account allowed to authenticate.
	StatusApproved Status = "Approved"
	// StatusRejected indicates an account denied during review.
	StatusRejected Status = "Rejected"
	// StatusBlocked indicates an account suspended by an admin.
	StatusBlocked Status = "Blocked"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the Status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusBlocked:
		return true
	default:
		return false
	}
}
