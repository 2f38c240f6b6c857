package handler

import (
	"encoding/json"
	"net/http"

	"teacher-transfer-system/internal/middleware"
	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/service"
	"teacher-transfer-system/internal/validate"
	"teacher-transfer-system/pkg/apierror"
)

type AuthHandler struct {
	auth          *service.AuthService
	teachers      *service.TeacherService
	maxUploadSize int64
}

func NewAuthHandler(auth *service.AuthService, teachers *service.TeacherService, maxUploadSize int64) *AuthHandler {
	return &AuthHandler{auth: auth, teachers: teachers, maxUploadSize: maxUploadSize}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", err.Error(), http.StatusBadRequest))
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

// Register handles POST /api/v1/auth/register. The body is a multipart form
// with the profile fields plus optional certificate and photo parts.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	uploads, cleanup, err := parseTeacherForm(w, r, h.maxUploadSize)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cleanup()

	currentSchoolID, err := formInt64(r, "currentSchoolId")
	if err != nil {
		writeError(w, err)
		return
	}

	req := model.RegisterTeacherRequest{
		Username:              r.FormValue("username"),
		Password:              r.FormValue("password"),
		FirstName:             r.FormValue("firstName"),
		LastName:              r.FormValue("lastName"),
		Email:                 r.FormValue("email"),
		Phone:                 r.FormValue("phone"),
		Address:               r.FormValue("address"),
		NRC:                   r.FormValue("nrc"),
		TSNo:                  r.FormValue("tsNo"),
		MaritalStatus:         r.FormValue("maritalStatus"),
		Bio:                   r.FormValue("bio"),
		CurrentSchoolID:       currentSchoolID,
		CurrentSchoolType:     r.FormValue("currentSchoolType"),
		CurrentPosition:       r.FormValue("currentPosition"),
		SubjectSpecialization: r.FormValue("subjectSpecialization"),
		Experience:            r.FormValue("experience"),
	}

	teacher, err := h.teachers.Register(r.Context(), req, uploads)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, teacher, nil)
}

// Me handles GET /api/v1/auth/me and returns the account behind the token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}
