package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts gin binding errors into one AppError that
// lists every failing field, keeping the json field names.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, e.Field())
		}
		if len(fields) == 1 {
			e := errs[0]
			if e.Tag() == "required" {
				return RequiredField(formatFieldName(e.Field())).WithDetails(map[string]any{"fields": fields})
			}
			return InvalidField(formatFieldName(e.Field())).WithDetails(map[string]any{"fields": fields})
		}
		return NewValidation(fields)
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
