//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teacher-transfer-system/internal/model"
)

func (e *env) openTransfer(t *testing.T) model.Transfer {
	t.Helper()

	status, resp := e.request(t, http.MethodPost, "/api/v1/transfers", e.teacherToken, map[string]int64{
		"teacherId":  e.teacher.ID,
		"toSchoolId": e.toSchool.ID,
	})
	require.Equal(t, http.StatusCreated, status)

	return decode[model.Transfer](t, resp.Data)
}

func (e *env) decide(t *testing.T, token string, id int64, next string, reason string) (int, apiResponse) {
	t.Helper()

	return e.request(t, http.MethodPut, fmt.Sprintf("/api/v1/transfers/%d/status", id), token, map[string]string{
		"status": next,
		"reason": reason,
	})
}

func TestTransferApprovalWorkflow(t *testing.T) {
	e := newEnv(t)

	tr := e.openTransfer(t)
	assert.Equal(t, model.StatusPending, tr.Status)
	require.NotNil(t, tr.FromSchoolID)
	assert.Equal(t, e.fromSchool.ID, *tr.FromSchoolID)

	// Stage one: the headteacher endorses.
	status, resp := e.decide(t, e.headteacherToken, tr.ID, "headteacher_approved", "")
	require.Equal(t, http.StatusOK, status)
	endorsed := decode[model.Transfer](t, resp.Data)
	assert.Equal(t, model.StatusHeadteacherApproved, endorsed.Status)

	// Stage two: the admin finalizes.
	status, resp = e.decide(t, e.adminToken, tr.ID, "approved", "")
	require.Equal(t, http.StatusOK, status)
	approved := decode[model.Transfer](t, resp.Data)
	assert.Equal(t, model.StatusApproved, approved.Status)

	// Terminal: nobody can move it again.
	status, resp = e.decide(t, e.adminToken, tr.ID, "rejected", "too late")
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ILLEGAL_TRANSITION", resp.Error.Code)
}

func TestAdminCannotSkipHeadteacherStage(t *testing.T) {
	e := newEnv(t)
	tr := e.openTransfer(t)

	status, resp := e.decide(t, e.adminToken, tr.ID, "approved", "")
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ILLEGAL_TRANSITION", resp.Error.Code)

	// The transfer is still pending.
	getStatus, getResp := e.request(t, http.MethodGet, fmt.Sprintf("/api/v1/transfers/%d", tr.ID), e.adminToken, nil)
	require.Equal(t, http.StatusOK, getStatus)
	assert.Equal(t, model.StatusPending, decode[model.Transfer](t, getResp.Data).Status)
}

func TestTeacherCannotDecideOverHTTP(t *testing.T) {
	e := newEnv(t)
	tr := e.openTransfer(t)

	status, _ := e.decide(t, e.teacherToken, tr.ID, "headteacher_approved", "")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRejectionKeepsReason(t *testing.T) {
	e := newEnv(t)
	tr := e.openTransfer(t)

	// No reason, no rejection.
	status, _ := e.decide(t, e.headteacherToken, tr.ID, "headteacher_rejected", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp := e.decide(t, e.headteacherToken, tr.ID, "headteacher_rejected", "no vacancy at destination")
	require.Equal(t, http.StatusOK, status)
	rejected := decode[model.Transfer](t, resp.Data)
	assert.Equal(t, model.StatusHeadteacherRejected, rejected.Status)
	assert.Equal(t, "no vacancy at destination", rejected.Reason)
}

func TestUnknownStatusRejectedOverHTTP(t *testing.T) {
	e := newEnv(t)
	tr := e.openTransfer(t)

	status, resp := e.decide(t, e.adminToken, tr.ID, "escalated_to_ministry", "")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
}

func TestStatsReflectWorkflow(t *testing.T) {
	e := newEnv(t)

	first := e.openTransfer(t)
	e.openTransfer(t)

	status, _ := e.decide(t, e.headteacherToken, first.ID, "headteacher_approved", "")
	require.Equal(t, http.StatusOK, status)

	statsStatus, resp := e.request(t, http.MethodGet, "/api/v1/stats", e.adminToken, nil)
	require.Equal(t, http.StatusOK, statsStatus)

	stats := decode[model.Stats](t, resp.Data)
	assert.Equal(t, 1, stats.Totals.TotalTeachers)
	assert.Equal(t, 2, stats.Totals.TotalSchools)
	assert.Equal(t, 1, stats.Totals.PendingTransfers)

	notifStatus, notifResp := e.request(t, http.MethodGet, "/api/v1/notifications", e.adminToken, nil)
	require.Equal(t, http.StatusOK, notifStatus)
	notifications := decode[[]model.Notification](t, notifResp.Data)
	require.Len(t, notifications, 2)
	assert.Equal(t, "Joseph Banda", notifications[0].TeacherName)
}
