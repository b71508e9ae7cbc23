package settingserrors

import (
	"net/http"

	"go-shinsei/internal/shared/apperror"
)

var (
	ErrInvalidHolidayDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid holiday date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmptyRouteSteps = apperror.New(
		apperror.CodeInvalidInput,
		"approval route must have at least one step",
		http.StatusBadRequest,
	)
	ErrInvalidRouteStep = apperror.New(
		apperror.CodeInvalidInput,
		"approval route step type must be manager, admin or user",
		http.StatusBadRequest,
	)
	ErrDuplicateLeaveType = apperror.New(
		apperror.CodeConflict,
		"duplicate leave type code",
		http.StatusConflict,
	)
)
