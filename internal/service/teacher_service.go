package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/storage"
	"teacher-transfer-system/internal/util"
	"teacher-transfer-system/internal/validate"
	"teacher-transfer-system/pkg/apierror"
)

// Form fields that carry file parts on registration and profile updates.
const (
	FileFieldMedicalCertificate         = "medicalCertificate"
	FileFieldAcademicQualifications     = "academicQualifications"
	FileFieldProfessionalQualifications = "professionalQualifications"
	FileFieldProfilePicture             = "profilePicture"
)

const thumbnailSize = 256

// DocumentUpload is one file part extracted from a multipart form.
type DocumentUpload struct {
	Field    string
	Filename string
	Reader   io.Reader
}

type TeacherService struct {
	teachers      TeacherRepo
	schools       SchoolRepo
	auth          *AuthService
	store         *storage.Store
	thumbnailRoot string
}

func NewTeacherService(teachers TeacherRepo, schools SchoolRepo, auth *AuthService, store *storage.Store, thumbnailRoot string) *TeacherService {
	return &TeacherService{
		teachers:      teachers,
		schools:       schools,
		auth:          auth,
		store:         store,
		thumbnailRoot: thumbnailRoot,
	}
}

func (s *TeacherService) List(ctx context.Context) ([]model.Teacher, error) {
	return s.teachers.List(ctx)
}

func (s *TeacherService) Get(ctx context.Context, id int64) (model.Teacher, error) {
	return s.teachers.FindByID(ctx, id)
}

// Register creates a teacher profile plus its login account from the
// multipart registration form.
func (s *TeacherService) Register(ctx context.Context, req model.RegisterTeacherRequest, uploads []DocumentUpload) (model.Teacher, error) {
	if err := validate.Struct(req); err != nil {
		return model.Teacher{}, err
	}

	// Claim-check the username before anything is persisted so a duplicate
	// cannot leave an account-less profile or stray uploads behind.
	if err := s.auth.CheckUsername(ctx, req.Username); err != nil {
		return model.Teacher{}, err
	}

	experience, err := parseExperience(req.Experience)
	if err != nil {
		return model.Teacher{}, err
	}

	if req.CurrentSchoolID != nil {
		if _, err := s.schools.FindByID(ctx, *req.CurrentSchoolID); err != nil {
			return model.Teacher{}, err
		}
	}

	now := time.Now().UTC()
	teacher := model.Teacher{
		FirstName:             strings.TrimSpace(req.FirstName),
		LastName:              strings.TrimSpace(req.LastName),
		Email:                 strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:                 strings.TrimSpace(req.Phone),
		Address:               strings.TrimSpace(req.Address),
		NRC:                   strings.TrimSpace(req.NRC),
		TSNo:                  strings.TrimSpace(req.TSNo),
		MaritalStatus:         strings.TrimSpace(req.MaritalStatus),
		Bio:                   strings.TrimSpace(req.Bio),
		CurrentSchoolID:       req.CurrentSchoolID,
		CurrentSchoolType:     strings.TrimSpace(req.CurrentSchoolType),
		CurrentPosition:       strings.TrimSpace(req.CurrentPosition),
		SubjectSpecialization: strings.TrimSpace(req.SubjectSpecialization),
		Experience:            experience,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.applyUploads(&teacher, uploads); err != nil {
		return model.Teacher{}, err
	}

	created, err := s.teachers.Create(ctx, teacher)
	if err != nil {
		return model.Teacher{}, err
	}

	if _, err := s.auth.CreateAccount(ctx, req.Username, req.Password, model.RoleTeacher, &created.ID); err != nil {
		return model.Teacher{}, err
	}

	return created, nil
}

// Update merges non-empty form fields into the stored profile. New document
// uploads replace the previous files.
func (s *TeacherService) Update(ctx context.Context, id int64, req model.UpdateTeacherRequest, uploads []DocumentUpload) (model.Teacher, error) {
	if err := validate.Struct(req); err != nil {
		return model.Teacher{}, err
	}

	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		return model.Teacher{}, err
	}

	if req.CurrentSchoolID != nil {
		if _, err := s.schools.FindByID(ctx, *req.CurrentSchoolID); err != nil {
			return model.Teacher{}, err
		}
		teacher.CurrentSchoolID = req.CurrentSchoolID
	}

	setIfPresent(&teacher.FirstName, req.FirstName)
	setIfPresent(&teacher.LastName, req.LastName)
	if strings.TrimSpace(req.Email) != "" {
		teacher.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	setIfPresent(&teacher.Phone, req.Phone)
	setIfPresent(&teacher.Address, req.Address)
	setIfPresent(&teacher.MaritalStatus, req.MaritalStatus)
	setIfPresent(&teacher.Bio, req.Bio)
	setIfPresent(&teacher.CurrentSchoolType, req.CurrentSchoolType)
	setIfPresent(&teacher.CurrentPosition, req.CurrentPosition)
	setIfPresent(&teacher.SubjectSpecialization, req.SubjectSpecialization)

	if strings.TrimSpace(req.Experience) != "" {
		experience, err := parseExperience(req.Experience)
		if err != nil {
			return model.Teacher{}, err
		}
		teacher.Experience = experience
	}

	if err := s.applyUploads(&teacher, uploads); err != nil {
		return model.Teacher{}, err
	}

	teacher.UpdatedAt = time.Now().UTC()
	if err := s.teachers.Update(ctx, teacher); err != nil {
		return model.Teacher{}, err
	}

	return teacher, nil
}

// Document opens a stored upload for serving.
func (s *TeacherService) Document(relPath string) (*os.File, error) {
	return s.store.Open(relPath)
}

// Thumbnail returns a scaled-down rendition of a stored image, generating and
// caching it on first request.
func (s *TeacherService) Thumbnail(relPath string) (*os.File, error) {
	thumbPath := s.thumbnailPath(relPath)
	if f, err := os.Open(thumbPath); err == nil {
		return f, nil
	}

	src, err := s.store.Open(relPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := util.MakeThumbnail(src, thumbPath, thumbnailSize); err != nil {
		return nil, apierror.New("UNSUPPORTED_TYPE", "stored document is not a supported image", relPath, http.StatusUnsupportedMediaType)
	}

	return os.Open(thumbPath)
}

func (s *TeacherService) applyUploads(teacher *model.Teacher, uploads []DocumentUpload) error {
	for _, upload := range uploads {
		var target *string
		category := "certificates"

		switch upload.Field {
		case FileFieldMedicalCertificate:
			target = &teacher.MedicalCertificate
		case FileFieldAcademicQualifications:
			target = &teacher.AcademicQualifications
		case FileFieldProfessionalQualifications:
			target = &teacher.ProfessionalQualifications
		case FileFieldProfilePicture:
			target = &teacher.ProfilePicture
			category = "photos"
		default:
			continue
		}

		relPath, err := s.store.Save(category, upload.Filename, upload.Reader)
		if err != nil {
			return err
		}

		if *target != "" {
			if err := s.store.Remove(*target); err != nil {
				slog.Warn("failed to remove replaced document", "path", *target, "error", err)
			}
		}
		*target = relPath
	}

	return nil
}

func (s *TeacherService) thumbnailPath(relPath string) string {
	hash := sha256.Sum256([]byte(relPath))
	return filepath.Join(s.thumbnailRoot, hex.EncodeToString(hash[:])+".jpg")
}

func parseExperience(raw string) ([]model.ExperienceEntry, error) {
	if strings.TrimSpace(raw) == "" {
		return []model.ExperienceEntry{}, nil
	}

	var entries []model.ExperienceEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, apierror.New("VALIDATION_FAILED", "experience must be a JSON array of {school, years}", err.Error(), http.StatusBadRequest)
	}

	return entries, nil
}

func setIfPresent(dst *string, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed != "" {
		*dst = trimmed
	}
}
