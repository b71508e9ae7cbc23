package routingerrors

import (
	"net/http"

	"go-shinsei/internal/shared/apperror"
)

// ErrNoRouteConfigured is a fatal configuration error: a request category
// without any applicable route must surface loudly, never auto-approve.
var ErrNoRouteConfigured = apperror.New(
	apperror.CodeNoRouteConfigured,
	"no approval route configured for this request",
	http.StatusInternalServerError,
)
