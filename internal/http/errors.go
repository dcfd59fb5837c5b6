package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"focozero-data/internal/domain"
)

// statusFor maps the domain failure taxonomy onto HTTP statuses. The
// empty-result sentinels map to 404 with their own message so the
// front-end can tell "no activity that day" from a bad route.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrNoActivityFound),
		errors.Is(err, domain.ErrNoDailyLogsFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyVisited):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidReference):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
		writeJSON(w, status, Fail("internal error"))
		return
	}
	writeJSON(w, status, Fail(err.Error()))
}
