package model

import (
	"strings"
	"time"
)

// TransferStatus is the lifecycle state of a transfer request. The zero value
// is not meaningful; unknown values coming back from storage are kept verbatim
// and treated as terminal.
type TransferStatus string

const (
	StatusPending             TransferStatus = "pending"
	StatusHeadteacherApproved TransferStatus = "headteacher_approved"
	StatusHeadteacherRejected TransferStatus = "headteacher_rejected"
	StatusApproved            TransferStatus = "approved"
	StatusRejected            TransferStatus = "rejected"
)

// Role of an authenticated caller.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleHeadteacher Role = "headteacher"
	RoleTeacher     Role = "teacher"
)

// transitions is the single source of truth for the approval workflow.
// A headteacher decides pending requests; an admin makes the final call on
// headteacher-approved ones. Every other (status, role) pair offers nothing.
var transitions = map[TransferStatus]map[Role][]TransferStatus{
	StatusPending: {
		RoleHeadteacher: {StatusHeadteacherApproved, StatusHeadteacherRejected},
	},
	StatusHeadteacherApproved: {
		RoleAdmin: {StatusApproved, StatusRejected},
	},
}

// AllowedTransitions returns the statuses the actor may move a transfer to from
// the current status. The returned slice is a copy; an empty result means the
// transfer is read-only for this actor.
func AllowedTransitions(current TransferStatus, actor Role) []TransferStatus {
	byRole, ok := transitions[current]
	if !ok {
		return nil
	}

	next, ok := byRole[actor]
	if !ok {
		return nil
	}

	out := make([]TransferStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether actor may move a transfer from current to next.
func CanTransition(current TransferStatus, actor Role, next TransferStatus) bool {
	for _, allowed := range AllowedTransitions(current, actor) {
		if allowed == next {
			return true
		}
	}

	return false
}

// Known reports whether s is one of the statuses this system issues.
func (s TransferStatus) Known() bool {
	switch s {
	case StatusPending, StatusHeadteacherApproved, StatusHeadteacherRejected, StatusApproved, StatusRejected:
		return true
	}

	return false
}

// Terminal reports whether no role can move the transfer out of s. Unknown
// statuses are terminal: they are displayed verbatim and never offered actions.
func (s TransferStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// Display renders a status as an upper-case badge, e.g. "HEADTEACHER APPROVED".
// Unknown statuses render verbatim, upper-cased the same way.
func (s TransferStatus) Display() string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
}

func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleHeadteacher:
		return RoleHeadteacher, true
	case RoleTeacher:
		return RoleTeacher, true
	}

	return "", false
}

// Transfer is a request to move a teacher between schools.
type Transfer struct {
	ID           int64          `json:"id"`
	Status       TransferStatus `json:"status"`
	Reason       string         `json:"reason,omitempty"`
	TeacherID    int64          `json:"teacherId"`
	FromSchoolID *int64         `json:"fromSchoolId"`
	ToSchoolID   *int64         `json:"toSchoolId"`
	Teacher      *Teacher       `json:"teacher,omitempty"`
	FromSchool   *School        `json:"fromSchool,omitempty"`
	ToSchool     *School        `json:"toSchool,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
