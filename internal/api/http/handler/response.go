package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Cookie names shared by the handlers and the authentication middleware.
const (
	AuthorizationCookie = "jwt_token"
	RefreshTokenCookie  = "refresh_token"
)

// AppResponse is the envelope returned by every successful endpoint.
type AppResponse struct {
	Status        int       `json:"status"`
	Data          any       `json:"data"`
	Timestamp     time.Time `json:"timestamp"`
	StatusMessage string    `json:"statusMessage"`
}

// AppErrorResponse is the envelope returned by every failed endpoint.
type AppErrorResponse struct {
	APIPath          string            `json:"apiPath"`
	ErrorCode        string            `json:"errorCode"`
	ErrorMessage     string            `json:"errorMessage"`
	ErrorTime        time.Time         `json:"errorTime"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// statusName renders an HTTP status as its constant name, e.g. 400
// becomes BAD_REQUEST.
func statusName(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// WriteSuccess writes the success envelope with the given payload.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, AppResponse{
		Status:        status,
		Data:          data,
		Timestamp:     time.Now().UTC(),
		StatusMessage: message,
	})
}

// WriteError writes the error envelope for the request path.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, AppErrorResponse{
		APIPath:      r.URL.Path,
		ErrorCode:    statusName(status),
		ErrorMessage: message,
		ErrorTime:    time.Now().UTC(),
	})
}

// WriteValidationError writes a 400 envelope with per-field messages.
func WriteValidationError(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, AppErrorResponse{
		APIPath:          r.URL.Path,
		ErrorCode:        statusName(http.StatusBadRequest),
		ErrorMessage:     "validation failed",
		ErrorTime:        time.Now().UTC(),
		ValidationErrors: fields,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
