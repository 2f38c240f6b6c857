package handler

import (
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/service"
)

type TeacherHandler struct {
	teachers      *service.TeacherService
	maxUploadSize int64
}

func NewTeacherHandler(teachers *service.TeacherService, maxUploadSize int64) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, maxUploadSize: maxUploadSize}
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teachers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, teachers, &model.Meta{Total: len(teachers)})
}

func (h *TeacherHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	teacher, err := h.teachers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, teacher, nil)
}

// Update handles PUT /api/v1/teachers/{id}. Like registration it takes a
// multipart form so documents can be replaced in the same request.
func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

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

	req := model.UpdateTeacherRequest{
		FirstName:             r.FormValue("firstName"),
		LastName:              r.FormValue("lastName"),
		Email:                 r.FormValue("email"),
		Phone:                 r.FormValue("phone"),
		Address:               r.FormValue("address"),
		MaritalStatus:         r.FormValue("maritalStatus"),
		Bio:                   r.FormValue("bio"),
		CurrentSchoolID:       currentSchoolID,
		CurrentSchoolType:     r.FormValue("currentSchoolType"),
		CurrentPosition:       r.FormValue("currentPosition"),
		SubjectSpecialization: r.FormValue("subjectSpecialization"),
		Experience:            r.FormValue("experience"),
	}

	teacher, err := h.teachers.Update(r.Context(), id, req, uploads)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, teacher, nil)
}

// Document handles GET /api/v1/files/{category}/{name} and streams a stored
// upload back to the caller.
func (h *TeacherHandler) Document(w http.ResponseWriter, r *http.Request) {
	file, err := h.teachers.Document(storedPath(r))
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	serveFile(w, file)
}

// Thumbnail handles GET /api/v1/files/{category}/{name}/thumbnail.
func (h *TeacherHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	file, err := h.teachers.Thumbnail(storedPath(r))
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = io.Copy(w, file)
}

func storedPath(r *http.Request) string {
	return path.Join(chi.URLParam(r, "category"), chi.URLParam(r, "name"))
}

func serveFile(w http.ResponseWriter, file io.Reader) {
	// Sniff the content type from the first chunk instead of trusting the
	// stored filename.
	buf := make([]byte, 512)
	n, _ := io.ReadFull(file, buf)
	w.Header().Set("Content-Type", http.DetectContentType(buf[:n]))
	_, _ = w.Write(buf[:n])
	_, _ = io.Copy(w, file)
}
