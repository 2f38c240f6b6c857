package model

import "time"

// ExperienceEntry is one prior posting on a teacher's record.
type ExperienceEntry struct {
	School string `json:"school"`
	Years  int    `json:"years"`
}

// Teacher is a teacher profile. Certificate and picture fields hold
// storage-relative paths to uploaded documents, not file contents.
type Teacher struct {
	ID                         int64             `json:"id"`
	FirstName                  string            `json:"firstName"`
	LastName                   string            `json:"lastName"`
	Email                      string            `json:"email"`
	Phone                      string            `json:"phone,omitempty"`
	Address                    string            `json:"address"`
	NRC                        string            `json:"nrc"`
	TSNo                       string            `json:"tsNo"`
	MaritalStatus              string            `json:"maritalStatus,omitempty"`
	Bio                        string            `json:"bio,omitempty"`
	MedicalCertificate         string            `json:"medicalCertificate,omitempty"`
	AcademicQualifications     string            `json:"academicQualifications,omitempty"`
	ProfessionalQualifications string            `json:"professionalQualifications,omitempty"`
	ProfilePicture             string            `json:"profilePicture,omitempty"`
	CurrentSchoolID            *int64            `json:"currentSchoolId"`
	CurrentSchool              *School           `json:"currentSchool,omitempty"`
	CurrentSchoolType          string            `json:"currentSchoolType,omitempty"`
	CurrentPosition            string            `json:"currentPosition,omitempty"`
	SubjectSpecialization      string            `json:"subjectSpecialization,omitempty"`
	Experience                 []ExperienceEntry `json:"experience"`
	CreatedAt                  time.Time         `json:"createdAt"`
	UpdatedAt                  time.Time         `json:"updatedAt"`
}

func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}
