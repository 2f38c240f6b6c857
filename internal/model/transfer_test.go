package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedTransitions(t *testing.T) {
	allRoles := []Role{RoleAdmin, RoleHeadteacher, RoleTeacher}
	allStatuses := []TransferStatus{
		StatusPending,
		StatusHeadteacherApproved,
		StatusHeadteacherRejected,
		StatusApproved,
		StatusRejected,
	}

	t.Run("full table", func(t *testing.T) {
		expected := map[TransferStatus]map[Role][]TransferStatus{
			StatusPending: {
				RoleHeadteacher: {StatusHeadteacherApproved, StatusHeadteacherRejected},
			},
			StatusHeadteacherApproved: {
				RoleAdmin: {StatusApproved, StatusRejected},
			},
		}

		for _, status := range allStatuses {
			for _, role := range allRoles {
				want := expected[status][role]
				got := AllowedTransitions(status, role)
				if len(want) == 0 {
					assert.Empty(t, got, "status=%s role=%s", status, role)
				} else {
					assert.Equal(t, want, got, "status=%s role=%s", status, role)
				}
			}
		}
	})

	t.Run("terminal statuses offer nothing", func(t *testing.T) {
		for _, status := range []TransferStatus{StatusHeadteacherRejected, StatusApproved, StatusRejected} {
			assert.True(t, status.Terminal())
			for _, role := range allRoles {
				assert.Empty(t, AllowedTransitions(status, role), "status=%s role=%s", status, role)
			}
		}
	})

	t.Run("unknown status is read-only and does not panic", func(t *testing.T) {
		unknown := TransferStatus("escalated_to_ministry")
		assert.False(t, unknown.Known())
		assert.True(t, unknown.Terminal())
		for _, role := range allRoles {
			assert.Empty(t, AllowedTransitions(unknown, role))
		}
		assert.Equal(t, "ESCALATED TO MINISTRY", unknown.Display())
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		first := AllowedTransitions(StatusPending, RoleHeadteacher)
		first[0] = StatusRejected
		second := AllowedTransitions(StatusPending, RoleHeadteacher)
		assert.Equal(t, StatusHeadteacherApproved, second[0])
	})
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, RoleHeadteacher, StatusHeadteacherApproved))
	assert.True(t, CanTransition(StatusPending, RoleHeadteacher, StatusHeadteacherRejected))
	assert.True(t, CanTransition(StatusHeadteacherApproved, RoleAdmin, StatusApproved))
	assert.True(t, CanTransition(StatusHeadteacherApproved, RoleAdmin, StatusRejected))

	// Role/status mismatches.
	assert.False(t, CanTransition(StatusPending, RoleAdmin, StatusHeadteacherApproved))
	assert.False(t, CanTransition(StatusPending, RoleTeacher, StatusHeadteacherApproved))
	assert.False(t, CanTransition(StatusHeadteacherApproved, RoleHeadteacher, StatusApproved))

	// No skipping the headteacher stage.
	assert.False(t, CanTransition(StatusPending, RoleAdmin, StatusApproved))

	// Nothing leaves a terminal state.
	assert.False(t, CanTransition(StatusApproved, RoleAdmin, StatusRejected))
	assert.False(t, CanTransition(StatusRejected, RoleAdmin, StatusApproved))
	assert.False(t, CanTransition(StatusHeadteacherRejected, RoleHeadteacher, StatusHeadteacherApproved))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole(" Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("principal")
	assert.False(t, ok)
}

func TestStatusDisplay(t *testing.T) {
	assert.Equal(t, "HEADTEACHER APPROVED", StatusHeadteacherApproved.Display())
	assert.Equal(t, "PENDING", StatusPending.Display())
}
