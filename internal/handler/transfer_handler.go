package handler

import (
	"encoding/json"
	"net/http"

	"teacher-transfer-system/internal/middleware"
	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/service"
	"teacher-transfer-system/pkg/apierror"
)

type TransferHandler struct {
	transfers *service.TransferService
}

func NewTransferHandler(transfers *service.TransferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.transfers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, transfers, &model.Meta{Total: len(transfers)})
}

func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	transfer, err := h.transfers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, transfer, nil)
}

func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", err.Error(), http.StatusBadRequest))
		return
	}

	// Teachers can only open transfers for their own profile.
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok && claims.Role == model.RoleTeacher {
		if claims.TeacherProfileID == nil || *claims.TeacherProfileID != req.TeacherID {
			writeError(w, model.ErrForbidden)
			return
		}
	}

	transfer, err := h.transfers.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, transfer, nil)
}

// UpdateStatus handles PUT /api/v1/transfers/{id}/status. The caller's role
// decides which transitions are open to it.
func (h *TransferHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var req model.UpdateTransferStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", err.Error(), http.StatusBadRequest))
		return
	}

	transfer, err := h.transfers.UpdateStatus(r.Context(), id, claims.Role, req.Status, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, transfer, nil)
}
