package http

import (
	"errors"
	"net/http"

	"github.com/SAMAymen/formix/internal/service"
	"github.com/SAMAymen/formix/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrValidationFailed:        http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrInvalidOAuthState:       http.StatusUnauthorized,
	service.ErrNoSpreadsheetConnected:  http.StatusNotFound,
	service.ErrReconnectRequired:       http.StatusUnauthorized,
	service.ErrSheetPermissionDenied:   http.StatusForbidden,
	service.ErrSheetNotFound:           http.StatusNotFound,

	store.ErrLoginAlreadyExists:  http.StatusConflict,
	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrFormNotFound:        http.StatusNotFound,
	store.ErrAccountNotFound:     http.StatusNotFound,
	store.ErrSubmissionNotFound:  http.StatusNotFound,
	store.ErrDuplicateSubmission: http.StatusConflict,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
