package client

import "time"

type User struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Role             string `json:"role"`
	TeacherProfileID *int64 `json:"teacherProfileId,omitempty"`
}

type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
	User      User   `json:"user"`
}

type School struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	District  string    `json:"district"`
	Province  string    `json:"province"`
	Code      string    `json:"code,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SchoolRequest struct {
	Name     string `json:"name"`
	District string `json:"district"`
	Province string `json:"province"`
	Code     string `json:"code,omitempty"`
}

type ExperienceEntry struct {
	School string `json:"school"`
	Years  int    `json:"years"`
}

type Teacher struct {
	ID                         int64             `json:"id"`
	FirstName                  string            `json:"firstName"`
	LastName                   string            `json:"lastName"`
	Email                      string            `json:"email"`
	Phone                      string            `json:"phone,omitempty"`
	Address                    string            `json:"address,omitempty"`
	NRC                        string            `json:"nrc,omitempty"`
	TSNo                       string            `json:"tsNo,omitempty"`
	MaritalStatus              string            `json:"maritalStatus,omitempty"`
	Bio                        string            `json:"bio,omitempty"`
	MedicalCertificate         string            `json:"medicalCertificate,omitempty"`
	AcademicQualifications     string            `json:"academicQualifications,omitempty"`
	ProfessionalQualifications string            `json:"professionalQualifications,omitempty"`
	ProfilePicture             string            `json:"profilePicture,omitempty"`
	CurrentSchoolID            *int64            `json:"currentSchoolId,omitempty"`
	CurrentSchool              *School           `json:"currentSchool,omitempty"`
	CurrentSchoolType          string            `json:"currentSchoolType,omitempty"`
	CurrentPosition            string            `json:"currentPosition,omitempty"`
	SubjectSpecialization      string            `json:"subjectSpecialization,omitempty"`
	Experience                 []ExperienceEntry `json:"experience,omitempty"`
	CreatedAt                  time.Time         `json:"createdAt"`
	UpdatedAt                  time.Time         `json:"updatedAt"`
}

func (t Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

type Transfer struct {
	ID           int64     `json:"id"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	TeacherID    int64     `json:"teacherId"`
	FromSchoolID *int64    `json:"fromSchoolId,omitempty"`
	ToSchoolID   *int64    `json:"toSchoolId,omitempty"`
	Teacher      *Teacher  `json:"teacher,omitempty"`
	FromSchool   *School   `json:"fromSchool,omitempty"`
	ToSchool     *School   `json:"toSchool,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateTransferRequest struct {
	TeacherID  int64 `json:"teacherId"`
	ToSchoolID int64 `json:"toSchoolId"`
}

type UpdateTransferStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type StatsTotals struct {
	TotalTeachers    int `json:"totalTeachers"`
	TotalSchools     int `json:"totalSchools"`
	PendingTransfers int `json:"pendingTransfers"`
}

type MonthBreakdown struct {
	Month    string `json:"month"`
	Pending  int    `json:"pending"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
}

type Stats struct {
	Totals          StatsTotals      `json:"totals"`
	TransferByMonth []MonthBreakdown `json:"transferByMonth"`
}

type Notification struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	TeacherName string    `json:"teacherName"`
	Date        time.Time `json:"date"`
}
