package service

import (
	"context"
	"time"

	"teacher-transfer-system/internal/model"
)

// Repository ports consumed by the services. The pgx implementations live in
// internal/repository; in-memory ones back the integration tests.

type UserRepo interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, u model.User) error
	IncrementFailedAttempts(ctx context.Context, userID string) error
	LockAccount(ctx context.Context, userID string, until time.Time) error
	ResetFailedAttempts(ctx context.Context, userID string) error
}

type SchoolRepo interface {
	List(ctx context.Context) ([]model.School, error)
	FindByID(ctx context.Context, id int64) (model.School, error)
	Create(ctx context.Context, s model.School) (model.School, error)
	Update(ctx context.Context, s model.School) error
	Delete(ctx context.Context, id int64) error
	InUse(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

type TeacherRepo interface {
	List(ctx context.Context) ([]model.Teacher, error)
	FindByID(ctx context.Context, id int64) (model.Teacher, error)
	Create(ctx context.Context, t model.Teacher) (model.Teacher, error)
	Update(ctx context.Context, t model.Teacher) error
	Count(ctx context.Context) (int, error)
}

type TransferRepo interface {
	List(ctx context.Context) ([]model.Transfer, error)
	FindByID(ctx context.Context, id int64) (model.Transfer, error)
	Create(ctx context.Context, tr model.Transfer) (model.Transfer, error)
	UpdateStatus(ctx context.Context, id int64, current model.TransferStatus, next model.TransferStatus, reason string) error
	CountByStatus(ctx context.Context, status model.TransferStatus) (int, error)
	MonthlyBreakdown(ctx context.Context) ([]model.MonthBreakdown, error)
	Recent(ctx context.Context, limit int) ([]model.Notification, error)
}
