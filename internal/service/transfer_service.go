package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/validate"
	"teacher-transfer-system/pkg/apierror"
)

type TransferService struct {
	transfers TransferRepo
	teachers  TeacherRepo
	schools   SchoolRepo
}

func NewTransferService(transfers TransferRepo, teachers TeacherRepo, schools SchoolRepo) *TransferService {
	return &TransferService{transfers: transfers, teachers: teachers, schools: schools}
}

// List returns all transfers hydrated with their teacher and school records.
func (s *TransferService) List(ctx context.Context) ([]model.Transfer, error) {
	transfers, err := s.transfers.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(transfers) == 0 {
		return transfers, nil
	}

	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, err
	}
	schools, err := s.schools.List(ctx)
	if err != nil {
		return nil, err
	}

	teacherByID := make(map[int64]model.Teacher, len(teachers))
	for _, t := range teachers {
		teacherByID[t.ID] = t
	}
	schoolByID := make(map[int64]model.School, len(schools))
	for _, sc := range schools {
		schoolByID[sc.ID] = sc
	}

	for i := range transfers {
		hydrate(&transfers[i], teacherByID, schoolByID)
	}

	return transfers, nil
}

func (s *TransferService) Get(ctx context.Context, id int64) (model.Transfer, error) {
	tr, err := s.transfers.FindByID(ctx, id)
	if err != nil {
		return model.Transfer{}, err
	}

	if teacher, err := s.teachers.FindByID(ctx, tr.TeacherID); err == nil {
		tr.Teacher = &teacher
	}
	if tr.FromSchoolID != nil {
		if school, err := s.schools.FindByID(ctx, *tr.FromSchoolID); err == nil {
			tr.FromSchool = &school
		}
	}
	if tr.ToSchoolID != nil {
		if school, err := s.schools.FindByID(ctx, *tr.ToSchoolID); err == nil {
			tr.ToSchool = &school
		}
	}

	return tr, nil
}

// Create opens a pending transfer request. The from-school is taken from the
// teacher's current posting, not from the caller.
func (s *TransferService) Create(ctx context.Context, req model.CreateTransferRequest) (model.Transfer, error) {
	if err := validate.Struct(req); err != nil {
		return model.Transfer{}, err
	}

	teacher, err := s.teachers.FindByID(ctx, req.TeacherID)
	if err != nil {
		return model.Transfer{}, err
	}

	if _, err := s.schools.FindByID(ctx, req.ToSchoolID); err != nil {
		return model.Transfer{}, err
	}

	if teacher.CurrentSchoolID != nil && *teacher.CurrentSchoolID == req.ToSchoolID {
		return model.Transfer{}, apierror.New("VALIDATION_FAILED", "teacher is already posted at the requested school", "", http.StatusBadRequest)
	}

	now := time.Now().UTC()
	toSchoolID := req.ToSchoolID
	created, err := s.transfers.Create(ctx, model.Transfer{
		Status:       model.StatusPending,
		TeacherID:    teacher.ID,
		FromSchoolID: teacher.CurrentSchoolID,
		ToSchoolID:   &toSchoolID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.Transfer{}, err
	}

	return s.Get(ctx, created.ID)
}

// UpdateStatus applies one workflow transition on behalf of actor. The
// transition table is the sole authority on what is legal; everything else is
// rejected before touching storage.
func (s *TransferService) UpdateStatus(ctx context.Context, id int64, actor model.Role, rawStatus string, reason string) (model.Transfer, error) {
	req := model.UpdateTransferStatusRequest{Status: rawStatus, Reason: reason}
	if err := validate.Struct(req); err != nil {
		return model.Transfer{}, err
	}

	next := model.TransferStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	if !next.Known() {
		return model.Transfer{}, apierror.New("VALIDATION_FAILED", "unknown transfer status", string(next), http.StatusBadRequest)
	}

	if (next == model.StatusHeadteacherRejected || next == model.StatusRejected) && strings.TrimSpace(reason) == "" {
		return model.Transfer{}, apierror.New("VALIDATION_FAILED", "a reason is required when rejecting a transfer", "", http.StatusBadRequest)
	}

	current, err := s.transfers.FindByID(ctx, id)
	if err != nil {
		return model.Transfer{}, err
	}

	if !model.CanTransition(current.Status, actor, next) {
		return model.Transfer{}, apierror.New(
			"ILLEGAL_TRANSITION",
			"status transition not permitted for this role",
			string(current.Status)+" -> "+string(next),
			http.StatusConflict,
		)
	}

	if err := s.transfers.UpdateStatus(ctx, id, current.Status, next, strings.TrimSpace(reason)); err != nil {
		return model.Transfer{}, err
	}

	return s.Get(ctx, id)
}

func hydrate(tr *model.Transfer, teacherByID map[int64]model.Teacher, schoolByID map[int64]model.School) {
	if teacher, ok := teacherByID[tr.TeacherID]; ok {
		tr.Teacher = &teacher
	}
	if tr.FromSchoolID != nil {
		if school, ok := schoolByID[*tr.FromSchoolID]; ok {
			tr.FromSchool = &school
		}
	}
	if tr.ToSchoolID != nil {
		if school, ok := schoolByID[*tr.ToSchoolID]; ok {
			tr.ToSchool = &school
		}
	}
}
