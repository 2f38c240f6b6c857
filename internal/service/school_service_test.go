package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/repository/inmem"
	"teacher-transfer-system/pkg/apierror"
)

func TestSchoolCRUD(t *testing.T) {
	repo := inmem.NewSchoolRepository()
	svc := NewSchoolService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.SchoolRequest{
		Name:     "  Lusaka Primary ",
		District: "Lusaka",
		Province: "Lusaka",
	})
	require.NoError(t, err)
	assert.Equal(t, "Lusaka Primary", created.Name)

	updated, err := svc.Update(ctx, created.ID, model.SchoolRequest{
		Name:     "Lusaka Basic",
		District: "Lusaka",
		Province: "Lusaka",
	})
	require.NoError(t, err)
	assert.Equal(t, "Lusaka Basic", updated.Name)

	schools, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, schools, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, apierror.HasCode(err, "NOT_FOUND"))
}

func TestSchoolValidation(t *testing.T) {
	svc := NewSchoolService(inmem.NewSchoolRepository())

	_, err := svc.Create(context.Background(), model.SchoolRequest{Name: "No District"})
	assert.True(t, apierror.HasCode(err, "VALIDATION_FAILED"))
}

func TestDeleteSchoolInUse(t *testing.T) {
	repo := inmem.NewSchoolRepository()
	repo.InUseFn = func(int64) bool { return true }
	svc := NewSchoolService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.SchoolRequest{Name: "Kitwe Secondary", District: "Kitwe", Province: "Copperbelt"})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID)
	assert.True(t, apierror.HasCode(err, "CONFLICT"))

	// Still there.
	_, err = svc.Get(ctx, created.ID)
	assert.NoError(t, err)
}
