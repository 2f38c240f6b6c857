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

func newAuthService(t *testing.T) (*AuthService, *inmem.UserRepository) {
	t.Helper()

	users := inmem.NewUserRepository()
	svc, err := NewAuthService("test-secret", time.Hour, 3, 10*time.Minute, users)
	require.NoError(t, err)
	return svc, users
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	profileID := int64(5)
	_, err := svc.CreateAccount(ctx, "jbanda", "correct horse", model.RoleTeacher, &profileID)
	require.NoError(t, err)

	result, err := svc.Login(ctx, "jbanda", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, model.RoleTeacher, result.User.Role)

	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "jbanda", claims.Username)
	assert.Equal(t, model.RoleTeacher, claims.Role)
	require.NotNil(t, claims.TeacherProfileID)
	assert.Equal(t, int64(5), *claims.TeacherProfileID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "admin", "secret123", model.RoleAdmin, nil)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "admin", "wrong")
	assert.True(t, apierror.HasCode(err, "UNAUTHORIZED"))

	// Unknown usernames get the same answer.
	_, err = svc.Login(ctx, "nobody", "wrong")
	assert.True(t, apierror.HasCode(err, "UNAUTHORIZED"))
}

func TestLockoutAfterRepeatedFailures(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "admin", "secret123", model.RoleAdmin, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Login(ctx, "admin", "wrong")
		require.Error(t, err)
	}

	// Even the right password bounces while the account is locked.
	_, err = svc.Login(ctx, "admin", "secret123")
	assert.True(t, apierror.HasCode(err, "LOCKED"))
}

func TestDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "admin", "secret123", model.RoleAdmin, nil)
	require.NoError(t, err)

	_, err = svc.CreateAccount(ctx, "admin", "other456", model.RoleAdmin, nil)
	assert.True(t, apierror.HasCode(err, "ALREADY_EXISTS"))
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "admin", "secret123", model.RoleAdmin, nil)
	require.NoError(t, err)
	result, err := svc.Login(ctx, "admin", "secret123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(result.Token + "x")
	assert.True(t, apierror.HasCode(err, "UNAUTHORIZED"))

	other, err := NewAuthService("different-secret", time.Hour, 3, 10*time.Minute, inmem.NewUserRepository())
	require.NoError(t, err)
	_, err = other.ValidateToken(result.Token)
	assert.True(t, apierror.HasCode(err, "UNAUTHORIZED"))
}
