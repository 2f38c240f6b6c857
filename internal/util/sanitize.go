package util

import (
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"teacher-transfer-system/pkg/apierror"
)

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename reduces an uploaded filename to a safe base name: path
// components are stripped, control and reserved characters replaced, and the
// result must be non-empty.
func SanitizeFilename(name string) (string, error) {
	trimmed := strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, `\`, "/")))
	if trimmed == "" || trimmed == "." || trimmed == ".." {
		return "", apierror.New("INVALID_FILENAME", "filename cannot be empty", name, http.StatusBadRequest)
	}

	if strings.Contains(trimmed, "\x00") {
		return "", apierror.New("INVALID_FILENAME", "filename contains null bytes", name, http.StatusBadRequest)
	}

	builder := strings.Builder{}
	builder.Grow(len(trimmed))
	for _, char := range trimmed {
		if unicode.IsControl(char) {
			continue
		}
		builder.WriteRune(char)
	}

	cleaned := invalidFilenameChars.ReplaceAllString(builder.String(), "_")
	cleaned = strings.Trim(cleaned, ". ")
	if cleaned == "" {
		return "", apierror.New("INVALID_FILENAME", "filename has no usable characters", name, http.StatusBadRequest)
	}

	return cleaned, nil
}
