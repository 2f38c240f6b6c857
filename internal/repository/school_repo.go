package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/pkg/apierror"
)

type SchoolRepository struct {
	pool *pgxpool.Pool
}

func NewSchoolRepository(pool *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{pool: pool}
}

func (r *SchoolRepository) List(ctx context.Context) ([]model.School, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, district, province, code, created_at, updated_at
		 FROM schools ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	defer rows.Close()

	schools := make([]model.School, 0)
	for rows.Next() {
		var s model.School
		if err := rows.Scan(&s.ID, &s.Name, &s.District, &s.Province, &s.Code, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan school: %w", err)
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

func (r *SchoolRepository) FindByID(ctx context.Context, id int64) (model.School, error) {
	var s model.School
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, district, province, code, created_at, updated_at
		 FROM schools WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.District, &s.Province, &s.Code, &s.CreatedAt, &s.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.School{}, apierror.New("NOT_FOUND", "school not found", strconv.FormatInt(id, 10), http.StatusNotFound)
	}
	if err != nil {
		return model.School{}, fmt.Errorf("find school by id: %w", err)
	}
	return s, nil
}

func (r *SchoolRepository) Create(ctx context.Context, s model.School) (model.School, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO schools (name, district, province, code, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		s.Name, s.District, s.Province, s.Code, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	if err != nil {
		return model.School{}, fmt.Errorf("create school: %w", err)
	}
	return s, nil
}

func (r *SchoolRepository) Update(ctx context.Context, s model.School) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE schools SET name = $2, district = $3, province = $4, code = $5, updated_at = $6
		 WHERE id = $1`,
		s.ID, s.Name, s.District, s.Province, s.Code, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "school not found", strconv.FormatInt(s.ID, 10), http.StatusNotFound)
	}
	return nil
}

func (r *SchoolRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "school not found", strconv.FormatInt(id, 10), http.StatusNotFound)
	}
	return nil
}

// InUse reports whether any teacher or transfer still references the school.
func (r *SchoolRepository) InUse(ctx context.Context, id int64) (bool, error) {
	var inUse bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM teachers WHERE current_school_id = $1)
		     OR EXISTS(SELECT 1 FROM transfers WHERE from_school_id = $1 OR to_school_id = $1)`,
		id).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("check school references: %w", err)
	}
	return inUse, nil
}

func (r *SchoolRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM schools`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count schools: %w", err)
	}
	return count, nil
}
