package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/service"
	"teacher-transfer-system/pkg/apierror"
)

type SchoolHandler struct {
	schools *service.SchoolService
}

func NewSchoolHandler(schools *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{schools: schools}
}

func (h *SchoolHandler) List(w http.ResponseWriter, r *http.Request) {
	schools, err := h.schools.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, schools, &model.Meta{Total: len(schools)})
}

func (h *SchoolHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	school, err := h.schools.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, school, nil)
}

func (h *SchoolHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.SchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", err.Error(), http.StatusBadRequest))
		return
	}

	school, err := h.schools.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, school, nil)
}

func (h *SchoolHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.SchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", err.Error(), http.StatusBadRequest))
		return
	}

	school, err := h.schools.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, school, nil)
}

func (h *SchoolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.schools.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": id}, nil)
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.New("BAD_REQUEST", "id must be a positive number", raw, http.StatusBadRequest)
	}

	return id, nil
}
