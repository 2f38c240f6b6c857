package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teacher-transfer-system/internal/model"
)

func TestStatsOverview(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	first := f.open(t)
	f.open(t)
	f.open(t)

	_, err := f.svc.UpdateStatus(ctx, first.ID, model.RoleHeadteacher, "headteacher_rejected", "no vacancy")
	require.NoError(t, err)

	stats := NewStatsService(f.teachers, f.schools, f.svc.transfers)

	overview, err := stats.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.Totals.TotalTeachers)
	assert.Equal(t, 2, overview.Totals.TotalSchools)
	assert.Equal(t, 2, overview.Totals.PendingTransfers)

	require.Len(t, overview.TransferByMonth, 1)
	month := overview.TransferByMonth[0]
	assert.Equal(t, 2, month.Pending)
	assert.Equal(t, 1, month.Rejected)
}

func TestStatsNotifications(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	f.open(t)
	second := f.open(t)
	_, err := f.svc.UpdateStatus(ctx, second.ID, model.RoleHeadteacher, "headteacher_approved", "")
	require.NoError(t, err)

	stats := NewStatsService(f.teachers, f.schools, f.svc.transfers)

	notifications, err := stats.Notifications(ctx, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	// Newest transfer first, carrying the teacher's display name.
	assert.Equal(t, second.ID, notifications[0].ID)
	assert.Equal(t, model.StatusHeadteacherApproved, notifications[0].Type)
	assert.Equal(t, "Joseph Banda", notifications[0].TeacherName)

	limited, err := stats.Notifications(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
