package service

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/validate"
	"teacher-transfer-system/pkg/apierror"
)

type SchoolService struct {
	schools SchoolRepo
}

func NewSchoolService(schools SchoolRepo) *SchoolService {
	return &SchoolService{schools: schools}
}

func (s *SchoolService) List(ctx context.Context) ([]model.School, error) {
	return s.schools.List(ctx)
}

func (s *SchoolService) Get(ctx context.Context, id int64) (model.School, error) {
	return s.schools.FindByID(ctx, id)
}

func (s *SchoolService) Create(ctx context.Context, req model.SchoolRequest) (model.School, error) {
	if err := validate.Struct(req); err != nil {
		return model.School{}, err
	}

	now := time.Now().UTC()
	return s.schools.Create(ctx, model.School{
		Name:      strings.TrimSpace(req.Name),
		District:  strings.TrimSpace(req.District),
		Province:  strings.TrimSpace(req.Province),
		Code:      strings.TrimSpace(req.Code),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *SchoolService) Update(ctx context.Context, id int64, req model.SchoolRequest) (model.School, error) {
	if err := validate.Struct(req); err != nil {
		return model.School{}, err
	}

	existing, err := s.schools.FindByID(ctx, id)
	if err != nil {
		return model.School{}, err
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.District = strings.TrimSpace(req.District)
	existing.Province = strings.TrimSpace(req.Province)
	existing.Code = strings.TrimSpace(req.Code)
	existing.UpdatedAt = time.Now().UTC()

	if err := s.schools.Update(ctx, existing); err != nil {
		return model.School{}, err
	}

	return existing, nil
}

func (s *SchoolService) Delete(ctx context.Context, id int64) error {
	inUse, err := s.schools.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apierror.New("CONFLICT", "school is referenced by teachers or transfers", strconv.FormatInt(id, 10), http.StatusConflict)
	}

	return s.schools.Delete(ctx, id)
}
