package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/repository/inmem"
	"teacher-transfer-system/pkg/apierror"
)

type transferFixture struct {
	svc      *TransferService
	teachers *inmem.TeacherRepository
	schools  *inmem.SchoolRepository
	from     model.School
	to       model.School
	teacher  model.Teacher
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()
	ctx := context.Background()

	schools := inmem.NewSchoolRepository()
	teachers := inmem.NewTeacherRepository()
	transfers := inmem.NewTransferRepository(teachers)

	from, err := schools.Create(ctx, model.School{Name: "Lusaka Primary", District: "Lusaka", Province: "Lusaka"})
	require.NoError(t, err)
	to, err := schools.Create(ctx, model.School{Name: "Kitwe Secondary", District: "Kitwe", Province: "Copperbelt"})
	require.NoError(t, err)

	teacher, err := teachers.Create(ctx, model.Teacher{
		FirstName:       "Joseph",
		LastName:        "Banda",
		Email:           "jbanda@example.org",
		CurrentSchoolID: &from.ID,
		CreatedAt:       time.Now().UTC(),
	})
	require.NoError(t, err)

	return &transferFixture{
		svc:      NewTransferService(transfers, teachers, schools),
		teachers: teachers,
		schools:  schools,
		from:     from,
		to:       to,
		teacher:  teacher,
	}
}

func (f *transferFixture) open(t *testing.T) model.Transfer {
	t.Helper()

	tr, err := f.svc.Create(context.Background(), model.CreateTransferRequest{
		TeacherID:  f.teacher.ID,
		ToSchoolID: f.to.ID,
	})
	require.NoError(t, err)
	return tr
}

func TestCreateTransferStartsPending(t *testing.T) {
	f := newTransferFixture(t)

	tr := f.open(t)
	assert.Equal(t, model.StatusPending, tr.Status)
	require.NotNil(t, tr.FromSchoolID)
	assert.Equal(t, f.from.ID, *tr.FromSchoolID)
	require.NotNil(t, tr.ToSchool)
	assert.Equal(t, f.to.Name, tr.ToSchool.Name)
	require.NotNil(t, tr.Teacher)
	assert.Equal(t, "Joseph Banda", tr.Teacher.FullName())
}

func TestCreateTransferToCurrentSchoolRejected(t *testing.T) {
	f := newTransferFixture(t)

	_, err := f.svc.Create(context.Background(), model.CreateTransferRequest{
		TeacherID:  f.teacher.ID,
		ToSchoolID: f.from.ID,
	})
	assert.True(t, apierror.HasCode(err, "VALIDATION_FAILED"))
}

func TestTwoStageApproval(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()
	tr := f.open(t)

	// Admin cannot decide before the headteacher has.
	_, err := f.svc.UpdateStatus(ctx, tr.ID, model.RoleAdmin, "approved", "")
	assert.True(t, apierror.HasCode(err, "ILLEGAL_TRANSITION"))

	endorsed, err := f.svc.UpdateStatus(ctx, tr.ID, model.RoleHeadteacher, "headteacher_approved", "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusHeadteacherApproved, endorsed.Status)

	// The headteacher is done with it now.
	_, err = f.svc.UpdateStatus(ctx, tr.ID, model.RoleHeadteacher, "headteacher_rejected", "changed my mind")
	assert.True(t, apierror.HasCode(err, "ILLEGAL_TRANSITION"))

	approved, err := f.svc.UpdateStatus(ctx, tr.ID, model.RoleAdmin, "approved", "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)

	// Approved is terminal.
	_, err = f.svc.UpdateStatus(ctx, tr.ID, model.RoleAdmin, "rejected", "too late")
	assert.True(t, apierror.HasCode(err, "ILLEGAL_TRANSITION"))
}

func TestRejectionRequiresReason(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()
	tr := f.open(t)

	_, err := f.svc.UpdateStatus(ctx, tr.ID, model.RoleHeadteacher, "headteacher_rejected", "  ")
	assert.True(t, apierror.HasCode(err, "VALIDATION_FAILED"))

	rejected, err := f.svc.UpdateStatus(ctx, tr.ID, model.RoleHeadteacher, "headteacher_rejected", "post is filled")
	require.NoError(t, err)
	assert.Equal(t, model.StatusHeadteacherRejected, rejected.Status)
	assert.Equal(t, "post is filled", rejected.Reason)
}

func TestUnknownStatusRejected(t *testing.T) {
	f := newTransferFixture(t)
	tr := f.open(t)

	_, err := f.svc.UpdateStatus(context.Background(), tr.ID, model.RoleAdmin, "escalated_to_ministry", "")
	assert.True(t, apierror.HasCode(err, "VALIDATION_FAILED"))

	// The stored transfer is untouched.
	got, err := f.svc.Get(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestTeacherCannotDecide(t *testing.T) {
	f := newTransferFixture(t)
	tr := f.open(t)

	_, err := f.svc.UpdateStatus(context.Background(), tr.ID, model.RoleTeacher, "headteacher_approved", "")
	assert.True(t, apierror.HasCode(err, "ILLEGAL_TRANSITION"))
}

func TestStatusIsNormalized(t *testing.T) {
	f := newTransferFixture(t)
	tr := f.open(t)

	endorsed, err := f.svc.UpdateStatus(context.Background(), tr.ID, model.RoleHeadteacher, "  Headteacher_Approved ", "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusHeadteacherApproved, endorsed.Status)
}

func TestListHydratesRelations(t *testing.T) {
	f := newTransferFixture(t)
	f.open(t)
	f.open(t)

	transfers, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	for _, tr := range transfers {
		require.NotNil(t, tr.Teacher)
		require.NotNil(t, tr.ToSchool)
		assert.Equal(t, "Kitwe Secondary", tr.ToSchool.Name)
	}
}

func TestUpdateStatusMissingTransfer(t *testing.T) {
	f := newTransferFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), 999, model.RoleAdmin, "approved", "")
	assert.True(t, apierror.HasCode(err, "NOT_FOUND"))
}
