package requesterrors

import (
	"net/http"

	"go-shinsei/internal/shared/apperror"
)

var (
	ErrInvalidCallerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid caller id",
		http.StatusBadRequest,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"category must be leave or correction",
		http.StatusBadRequest,
	)
	ErrInvalidScope = apperror.New(
		apperror.CodeInvalidInput,
		"scope must be mine, team or all",
		http.StatusBadRequest,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrScopeForbidden = apperror.New(
		apperror.CodeForbidden,
		"requested scope is not allowed for this role",
		http.StatusForbidden,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"request has already been decided",
		http.StatusConflict,
	)
	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not an approver for this request",
		http.StatusForbidden,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"you cannot decide your own request",
		http.StatusForbidden,
	)
)
