// Package inmem holds in-memory repository implementations. They back the
// integration tests so the full HTTP stack can run without Postgres.
package inmem

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/pkg/apierror"
)

func notFound(entity string, id string) error {
	return apierror.New("NOT_FOUND", entity+" not found", id, http.StatusNotFound)
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]model.User{}}
}

func (r *UserRepository) FindByID(_ context.Context, id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return model.User{}, notFound("user", id)
	}

	return user, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}

	return model.User{}, notFound("user", username)
}

func (r *UserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (r *UserRepository) Create(_ context.Context, u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[u.ID] = u
	return nil
}

func (r *UserRepository) IncrementFailedAttempts(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return notFound("user", userID)
	}

	user.FailedLoginAttempts++
	r.users[userID] = user
	return nil
}

func (r *UserRepository) LockAccount(_ context.Context, userID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return notFound("user", userID)
	}

	user.LockedUntil = &until
	r.users[userID] = user
	return nil
}

func (r *UserRepository) ResetFailedAttempts(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return notFound("user", userID)
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	r.users[userID] = user
	return nil
}

type SchoolRepository struct {
	mu      sync.RWMutex
	nextID  int64
	schools map[int64]model.School

	// InUseFn lets a test wire referential checks against the other stores.
	InUseFn func(id int64) bool
}

func NewSchoolRepository() *SchoolRepository {
	return &SchoolRepository{nextID: 1, schools: map[int64]model.School{}}
}

func (r *SchoolRepository) List(_ context.Context) ([]model.School, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.School, 0, len(r.schools))
	for _, s := range r.schools {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *SchoolRepository) FindByID(_ context.Context, id int64) (model.School, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schools[id]
	if !ok {
		return model.School{}, notFound("school", strconv.FormatInt(id, 10))
	}

	return s, nil
}

func (r *SchoolRepository) Create(_ context.Context, s model.School) (model.School, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.nextID
	r.nextID++
	r.schools[s.ID] = s

	return s, nil
}

func (r *SchoolRepository) Update(_ context.Context, s model.School) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schools[s.ID]; !ok {
		return notFound("school", strconv.FormatInt(s.ID, 10))
	}

	r.schools[s.ID] = s
	return nil
}

func (r *SchoolRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schools[id]; !ok {
		return notFound("school", strconv.FormatInt(id, 10))
	}

	delete(r.schools, id)
	return nil
}

func (r *SchoolRepository) InUse(_ context.Context, id int64) (bool, error) {
	if r.InUseFn != nil {
		return r.InUseFn(id), nil
	}

	return false, nil
}

func (r *SchoolRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.schools), nil
}

type TeacherRepository struct {
	mu       sync.RWMutex
	nextID   int64
	teachers map[int64]model.Teacher
}

func NewTeacherRepository() *TeacherRepository {
	return &TeacherRepository{nextID: 1, teachers: map[int64]model.Teacher{}}
}

func (r *TeacherRepository) List(_ context.Context) ([]model.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Teacher, 0, len(r.teachers))
	for _, t := range r.teachers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeacherRepository) FindByID(_ context.Context, id int64) (model.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teachers[id]
	if !ok {
		return model.Teacher{}, notFound("teacher", strconv.FormatInt(id, 10))
	}

	return t, nil
}

func (r *TeacherRepository) Create(_ context.Context, t model.Teacher) (model.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	r.teachers[t.ID] = t

	return t, nil
}

func (r *TeacherRepository) Update(_ context.Context, t model.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teachers[t.ID]; !ok {
		return notFound("teacher", strconv.FormatInt(t.ID, 10))
	}

	r.teachers[t.ID] = t
	return nil
}

func (r *TeacherRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.teachers), nil
}

type TransferRepository struct {
	mu        sync.RWMutex
	nextID    int64
	transfers map[int64]model.Transfer
	teachers  *TeacherRepository
}

func NewTransferRepository(teachers *TeacherRepository) *TransferRepository {
	return &TransferRepository{nextID: 1, transfers: map[int64]model.Transfer{}, teachers: teachers}
}

func (r *TransferRepository) List(_ context.Context) ([]model.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Transfer, 0, len(r.transfers))
	for _, tr := range r.transfers {
		out = append(out, tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (r *TransferRepository) FindByID(_ context.Context, id int64) (model.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tr, ok := r.transfers[id]
	if !ok {
		return model.Transfer{}, notFound("transfer", strconv.FormatInt(id, 10))
	}

	return tr, nil
}

func (r *TransferRepository) Create(_ context.Context, tr model.Transfer) (model.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tr.ID = r.nextID
	r.nextID++
	r.transfers[tr.ID] = tr

	return tr, nil
}

func (r *TransferRepository) UpdateStatus(_ context.Context, id int64, current model.TransferStatus, next model.TransferStatus, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tr, ok := r.transfers[id]
	if !ok {
		return notFound("transfer", strconv.FormatInt(id, 10))
	}

	if tr.Status != current {
		return apierror.New("CONFLICT", "transfer status changed concurrently", string(tr.Status), http.StatusConflict)
	}

	tr.Status = next
	if reason != "" {
		tr.Reason = reason
	}
	tr.UpdatedAt = time.Now().UTC()
	r.transfers[id] = tr

	return nil
}

func (r *TransferRepository) CountByStatus(_ context.Context, status model.TransferStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, tr := range r.transfers {
		if tr.Status == status {
			count++
		}
	}

	return count, nil
}

func (r *TransferRepository) MonthlyBreakdown(_ context.Context) ([]model.MonthBreakdown, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byMonth := map[string]*model.MonthBreakdown{}
	for _, tr := range r.transfers {
		month := tr.CreatedAt.UTC().Format("2006-01")
		entry, ok := byMonth[month]
		if !ok {
			entry = &model.MonthBreakdown{Month: month}
			byMonth[month] = entry
		}

		switch tr.Status {
		case model.StatusPending:
			entry.Pending++
		case model.StatusApproved, model.StatusHeadteacherApproved:
			entry.Approved++
		case model.StatusRejected, model.StatusHeadteacherRejected:
			entry.Rejected++
		}
	}

	out := make([]model.MonthBreakdown, 0, len(byMonth))
	for _, entry := range byMonth {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	return out, nil
}

func (r *TransferRepository) Recent(ctx context.Context, limit int) ([]model.Notification, error) {
	transfers, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > len(transfers) {
		limit = len(transfers)
	}

	out := make([]model.Notification, 0, limit)
	for _, tr := range transfers[:limit] {
		name := ""
		if r.teachers != nil {
			if teacher, err := r.teachers.FindByID(ctx, tr.TeacherID); err == nil {
				name = teacher.FullName()
			}
		}

		out = append(out, model.Notification{
			ID:          tr.ID,
			Type:        tr.Status,
			TeacherName: name,
			Date:        tr.UpdatedAt,
		})
	}

	return out, nil
}
