package model

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterTeacherRequest is the non-file portion of the multipart teacher
// registration form. Certificates and the profile picture arrive as file parts.
type RegisterTeacherRequest struct {
	Username              string `json:"username" validate:"required,min=4"`
	Password              string `json:"password" validate:"required,min=8"`
	FirstName             string `json:"firstName" validate:"required"`
	LastName              string `json:"lastName" validate:"required"`
	Email                 string `json:"email" validate:"required,email"`
	Phone                 string `json:"phone" validate:"omitempty"`
	Address               string `json:"address" validate:"required"`
	NRC                   string `json:"nrc" validate:"required"`
	TSNo                  string `json:"tsNo" validate:"required"`
	MaritalStatus         string `json:"maritalStatus" validate:"omitempty"`
	Bio                   string `json:"bio" validate:"omitempty"`
	CurrentSchoolID       *int64 `json:"currentSchoolId" validate:"omitempty,gt=0"`
	CurrentSchoolType     string `json:"currentSchoolType" validate:"omitempty"`
	CurrentPosition       string `json:"currentPosition" validate:"omitempty"`
	SubjectSpecialization string `json:"subjectSpecialization" validate:"omitempty"`
	Experience            string `json:"experience" validate:"omitempty,json"`
}

// UpdateTeacherRequest mirrors the registration form minus credentials. Empty
// fields leave the stored value untouched.
type UpdateTeacherRequest struct {
	FirstName             string `json:"firstName" validate:"omitempty"`
	LastName              string `json:"lastName" validate:"omitempty"`
	Email                 string `json:"email" validate:"omitempty,email"`
	Phone                 string `json:"phone" validate:"omitempty"`
	Address               string `json:"address" validate:"omitempty"`
	MaritalStatus         string `json:"maritalStatus" validate:"omitempty"`
	Bio                   string `json:"bio" validate:"omitempty"`
	CurrentSchoolID       *int64 `json:"currentSchoolId" validate:"omitempty,gt=0"`
	CurrentSchoolType     string `json:"currentSchoolType" validate:"omitempty"`
	CurrentPosition       string `json:"currentPosition" validate:"omitempty"`
	SubjectSpecialization string `json:"subjectSpecialization" validate:"omitempty"`
	Experience            string `json:"experience" validate:"omitempty,json"`
}

type SchoolRequest struct {
	Name     string `json:"name" validate:"required"`
	District string `json:"district" validate:"required"`
	Province string `json:"province" validate:"required"`
	Code     string `json:"code" validate:"omitempty"`
}

type CreateTransferRequest struct {
	TeacherID  int64 `json:"teacherId" validate:"required,gt=0"`
	ToSchoolID int64 `json:"toSchoolId" validate:"required,gt=0"`
}

// UpdateTransferStatusRequest carries one workflow decision. A reason is
// mandatory when the decision is a rejection.
type UpdateTransferStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"omitempty"`
}
