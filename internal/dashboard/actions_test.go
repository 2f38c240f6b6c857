package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teacher-transfer-system/internal/model"
)

func TestActionsForHeadteacherOnPending(t *testing.T) {
	actions := ActionsFor(model.StatusPending, model.RoleHeadteacher)

	require.Len(t, actions, 2)
	assert.Equal(t, "Approve", actions[0].Label)
	assert.Equal(t, model.StatusHeadteacherApproved, actions[0].Target)
	assert.Equal(t, "Reject", actions[1].Label)
	assert.Equal(t, model.StatusHeadteacherRejected, actions[1].Target)
}

func TestActionsForAdminOnEndorsed(t *testing.T) {
	actions := ActionsFor(model.StatusHeadteacherApproved, model.RoleAdmin)

	require.Len(t, actions, 2)
	assert.Equal(t, model.StatusApproved, actions[0].Target)
	assert.Equal(t, model.StatusRejected, actions[1].Target)
}

func TestActionsForNothingToDo(t *testing.T) {
	assert.Empty(t, ActionsFor(model.StatusPending, model.RoleAdmin))
	assert.Empty(t, ActionsFor(model.StatusPending, model.RoleTeacher))
	assert.Empty(t, ActionsFor(model.StatusHeadteacherApproved, model.RoleTeacher))
	assert.Empty(t, ActionsFor(model.StatusHeadteacherApproved, model.RoleHeadteacher))
	assert.Empty(t, ActionsFor(model.StatusApproved, model.RoleAdmin))
	assert.Empty(t, ActionsFor(model.TransferStatus("escalated"), model.RoleAdmin))
}
