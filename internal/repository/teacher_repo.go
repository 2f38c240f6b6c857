package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/pkg/apierror"
)

type TeacherRepository struct {
	pool *pgxpool.Pool
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

const teacherColumns = `t.id, t.first_name, t.last_name, t.email, t.phone, t.address,
	t.nrc, t.ts_no, t.marital_status, t.bio,
	t.medical_certificate, t.academic_qualifications, t.professional_qualifications,
	t.profile_picture, t.current_school_id, t.current_school_type, t.current_position,
	t.subject_specialization, t.experience, t.created_at, t.updated_at,
	s.id, s.name, s.district, s.province, s.code`

const teacherFrom = ` FROM teachers t LEFT JOIN schools s ON s.id = t.current_school_id`

func scanTeacher(row pgx.Row) (model.Teacher, error) {
	var (
		t        model.Teacher
		expRaw   []byte
		schoolID *int64
		name     *string
		district *string
		province *string
		code     *string
	)

	err := row.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.Address,
		&t.NRC, &t.TSNo, &t.MaritalStatus, &t.Bio,
		&t.MedicalCertificate, &t.AcademicQualifications, &t.ProfessionalQualifications,
		&t.ProfilePicture, &t.CurrentSchoolID, &t.CurrentSchoolType, &t.CurrentPosition,
		&t.SubjectSpecialization, &expRaw, &t.CreatedAt, &t.UpdatedAt,
		&schoolID, &name, &district, &province, &code)
	if err != nil {
		return model.Teacher{}, err
	}

	t.Experience = []model.ExperienceEntry{}
	if len(expRaw) > 0 {
		// Bad rows degrade to an empty history instead of failing the read.
		_ = json.Unmarshal(expRaw, &t.Experience)
	}

	if schoolID != nil {
		t.CurrentSchool = &model.School{
			ID: *schoolID, Name: deref(name), District: deref(district),
			Province: deref(province), Code: deref(code),
		}
	}

	return t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *TeacherRepository) List(ctx context.Context) ([]model.Teacher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+teacherColumns+teacherFrom+` ORDER BY t.last_name, t.first_name`)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	teachers := make([]model.Teacher, 0)
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (model.Teacher, error) {
	t, err := scanTeacher(r.pool.QueryRow(ctx,
		`SELECT `+teacherColumns+teacherFrom+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Teacher{}, apierror.New("NOT_FOUND", "teacher not found", strconv.FormatInt(id, 10), http.StatusNotFound)
	}
	if err != nil {
		return model.Teacher{}, fmt.Errorf("find teacher by id: %w", err)
	}
	return t, nil
}

func (r *TeacherRepository) Create(ctx context.Context, t model.Teacher) (model.Teacher, error) {
	expRaw, err := json.Marshal(t.Experience)
	if err != nil {
		return model.Teacher{}, fmt.Errorf("encode experience: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO teachers (
			first_name, last_name, email, phone, address, nrc, ts_no, marital_status, bio,
			medical_certificate, academic_qualifications, professional_qualifications,
			profile_picture, current_school_id, current_school_type, current_position,
			subject_specialization, experience, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING id`,
		t.FirstName, t.LastName, t.Email, t.Phone, t.Address, t.NRC, t.TSNo, t.MaritalStatus, t.Bio,
		t.MedicalCertificate, t.AcademicQualifications, t.ProfessionalQualifications,
		t.ProfilePicture, t.CurrentSchoolID, t.CurrentSchoolType, t.CurrentPosition,
		t.SubjectSpecialization, expRaw, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
	if err != nil {
		return model.Teacher{}, fmt.Errorf("create teacher: %w", err)
	}
	return t, nil
}

func (r *TeacherRepository) Update(ctx context.Context, t model.Teacher) error {
	expRaw, err := json.Marshal(t.Experience)
	if err != nil {
		return fmt.Errorf("encode experience: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE teachers SET
			first_name = $2, last_name = $3, email = $4, phone = $5, address = $6,
			nrc = $7, ts_no = $8, marital_status = $9, bio = $10,
			medical_certificate = $11, academic_qualifications = $12,
			professional_qualifications = $13, profile_picture = $14,
			current_school_id = $15, current_school_type = $16, current_position = $17,
			subject_specialization = $18, experience = $19, updated_at = $20
		 WHERE id = $1`,
		t.ID, t.FirstName, t.LastName, t.Email, t.Phone, t.Address,
		t.NRC, t.TSNo, t.MaritalStatus, t.Bio,
		t.MedicalCertificate, t.AcademicQualifications,
		t.ProfessionalQualifications, t.ProfilePicture,
		t.CurrentSchoolID, t.CurrentSchoolType, t.CurrentPosition,
		t.SubjectSpecialization, expRaw, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "teacher not found", strconv.FormatInt(t.ID, 10), http.StatusNotFound)
	}
	return nil
}

func (r *TeacherRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return count, nil
}
