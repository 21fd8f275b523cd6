package handler

import (
	"errors"
	"net/http"

	"github.com/identityx/identityx-api/internal/model"
)

// handleError maps service errors onto the error envelope. Unknown
// errors surface as 500 without leaking internals.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var refreshErr *model.TokenRefreshError
	switch {
	case errors.Is(err, model.ErrBadCredentials):
		WriteError(w, r, http.StatusBadRequest, "invalid username or password")
	case errors.Is(err, model.ErrUserAlreadyExists):
		WriteError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &refreshErr):
		WriteError(w, r, http.StatusForbidden, refreshErr.Error())
	case errors.Is(err, model.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "resource not found")
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
