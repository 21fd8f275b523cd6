package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/identityx/identityx-api/internal/logger"
	"github.com/identityx/identityx-api/internal/model"
	"github.com/identityx/identityx-api/internal/service"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]{3,}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// UserService covers account registration.
type UserService interface {
	Register(ctx context.Context, reg service.Registration) (model.User, error)
}

// User serves the account endpoints.
type User struct {
	users          UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new user handler.
func NewUser(users UserService, contextManager model.ContextManager, l *logger.Logger) *User {
	return &User{users: users, contextManager: contextManager, logger: l}
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type userInfoResponse struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	UserID     string `json:"userId"`
	FirstName  string `json:"firstName,omitempty"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
}

func (req registerRequest) validate() map[string]string {
	fields := map[string]string{}
	if !usernamePattern.MatchString(req.Username) {
		fields["username"] = "username must be at least 3 characters and contain only letters, digits or . _ % + -"
	}
	if !emailPattern.MatchString(req.Email) {
		fields["email"] = "email must be a valid address"
	}
	if req.Password == "" {
		fields["password"] = "password is required"
	}
	if req.FirstName == "" {
		fields["firstName"] = "first name is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Register creates a new account.
func (h *User) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := req.validate(); fields != nil {
		WriteValidationError(w, r, fields)
		return
	}

	user, err := h.users.Register(r.Context(), service.Registration{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "User registered successfully", userInfoResponse{
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.UserID.String(),
	})
}

// Me returns the authenticated user's profile.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	WriteSuccess(w, http.StatusOK, "User profile", userInfoResponse{
		Username:   user.Username,
		Email:      user.Email,
		UserID:     user.UserID.String(),
		FirstName:  user.FirstName,
		MiddleName: user.MiddleName,
		LastName:   user.LastName,
	})
}
