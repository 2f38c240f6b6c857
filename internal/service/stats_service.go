package service

import (
	"context"

	"teacher-transfer-system/internal/model"
)

type StatsService struct {
	teachers  TeacherRepo
	schools   SchoolRepo
	transfers TransferRepo
}

func NewStatsService(teachers TeacherRepo, schools SchoolRepo, transfers TransferRepo) *StatsService {
	return &StatsService{teachers: teachers, schools: schools, transfers: transfers}
}

func (s *StatsService) Overview(ctx context.Context) (model.Stats, error) {
	teacherCount, err := s.teachers.Count(ctx)
	if err != nil {
		return model.Stats{}, err
	}

	schoolCount, err := s.schools.Count(ctx)
	if err != nil {
		return model.Stats{}, err
	}

	pending, err := s.transfers.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		return model.Stats{}, err
	}

	breakdown, err := s.transfers.MonthlyBreakdown(ctx)
	if err != nil {
		return model.Stats{}, err
	}

	return model.Stats{
		Totals: model.StatsTotals{
			TotalTeachers:    teacherCount,
			TotalSchools:     schoolCount,
			PendingTransfers: pending,
		},
		TransferByMonth: breakdown,
	}, nil
}

func (s *StatsService) Notifications(ctx context.Context, limit int) ([]model.Notification, error) {
	return s.transfers.Recent(ctx, limit)
}
