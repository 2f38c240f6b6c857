package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"teacher-transfer-system/internal/service"
	"teacher-transfer-system/pkg/apierror"
)

// memoryBuffer is how much of a multipart form ParseMultipartForm keeps in
// memory before spilling to temp files.
const memoryBuffer = 8 << 20

var documentFields = []string{
	service.FileFieldMedicalCertificate,
	service.FileFieldAcademicQualifications,
	service.FileFieldProfessionalQualifications,
	service.FileFieldProfilePicture,
}

// parseTeacherForm reads a multipart teacher form, capping the request body at
// maxBytes. It returns the opened file parts and a cleanup func the caller must
// invoke once the uploads have been consumed.
func parseTeacherForm(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]service.DocumentUpload, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(memoryBuffer); err != nil {
		if isPayloadTooLarge(err) {
			return nil, nil, apierror.New("PAYLOAD_TOO_LARGE", "request body exceeds the upload limit", strconv.FormatInt(maxBytes, 10), http.StatusRequestEntityTooLarge)
		}
		return nil, nil, apierror.New("BAD_REQUEST", "malformed multipart form", err.Error(), http.StatusBadRequest)
	}

	var (
		uploads []service.DocumentUpload
		opened  []multipart.File
	)
	cleanup := func() {
		for _, f := range opened {
			_ = f.Close()
		}
		_ = r.MultipartForm.RemoveAll()
	}

	for _, field := range documentFields {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}

		file, err := headers[0].Open()
		if err != nil {
			cleanup()
			return nil, nil, apierror.New("BAD_REQUEST", "unreadable file part", field, http.StatusBadRequest)
		}

		opened = append(opened, file)
		uploads = append(uploads, service.DocumentUpload{
			Field:    field,
			Filename: headers[0].Filename,
			Reader:   file,
		})
	}

	return uploads, cleanup, nil
}

func isPayloadTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large")
}

// formInt64 parses an optional numeric form field, returning nil when absent.
func formInt64(r *http.Request, field string) (*int64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apierror.New("VALIDATION_FAILED", field+" must be a number", raw, http.StatusBadRequest)
	}

	return &value, nil
}
