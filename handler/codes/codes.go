package codes

import (
	"errors"
	"net/http"

	"custody/core"
)

// Status http status of err
func Status(err error) int {
	if errors.Is(err, core.ErrNotFound) {
		return http.StatusNotFound
	}

	switch core.CodeOf(err) {
	case core.ErrUnauthorized:
		return http.StatusForbidden
	case core.ErrPaused, core.ErrReentrancyRejected:
		return http.StatusConflict
	case core.ErrInvalidArgument:
		return http.StatusBadRequest
	case core.ErrTransferFailed, core.ErrInsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
