// Package validate centralizes request-schema validation so individual
// handlers do not re-implement required-field checks.
package validate

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"teacher-transfer-system/pkg/apierror"
)

var instance = validator.New(validator.WithRequiredStructEnabled())

// Struct validates v against its `validate` tags and converts failures into a
// single VALIDATION_FAILED APIError naming the offending fields.
func Struct(v any) error {
	err := instance.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierror.New("VALIDATION_FAILED", "invalid request", err.Error(), http.StatusBadRequest)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fieldName(fe)+" ("+fe.Tag()+")")
	}

	return apierror.New(
		"VALIDATION_FAILED",
		"one or more fields are invalid",
		strings.Join(fields, ", "),
		http.StatusBadRequest,
	)
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}

	// Lower-case the first rune so errors read like the JSON form fields.
	return strings.ToLower(name[:1]) + name[1:]
}
