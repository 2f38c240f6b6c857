package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/pkg/apierror"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()

	var resp model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteErrorAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apierror.New("ILLEGAL_TRANSITION", "status transition not permitted for this role", "pending -> approved", http.StatusConflict))

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ILLEGAL_TRANSITION", resp.Error.Code)
	assert.Equal(t, "pending -> approved", resp.Error.Details)
}

func TestWriteErrorWrappedAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := fmt.Errorf("load transfer: %w", apierror.New("NOT_FOUND", "transfer not found", "7", http.StatusNotFound))
	writeError(rec, wrapped)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestWriteErrorSentinels(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, model.ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeEnvelope(t, rec).Error.Code)

	rec = httptest.NewRecorder()
	writeError(rec, model.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, rec).Error.Code)
}

func TestWriteErrorUnclassified(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	// Internal detail must not leak to the caller.
	assert.NotContains(t, resp.Error.Message, "disk on fire")
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusCreated, map[string]int{"id": 1}, &model.Meta{Total: 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
}
