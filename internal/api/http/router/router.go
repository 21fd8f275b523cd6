// Package router wires handlers and middleware into the HTTP surface.
package router

import (
	"net/http"
	"time"

	"github.com/identityx/identityx-api/internal/api/http/handler"
	"github.com/identityx/identityx-api/internal/api/http/middleware"
	"github.com/identityx/identityx-api/internal/logger"
	"github.com/identityx/identityx-api/internal/model"
	"github.com/identityx/identityx-api/internal/service"
)

// Router manages route registration and middleware configuration.
type Router struct {
	authService    *service.Auth
	userService    *service.User
	addressService *service.Address
	tokenService   *service.TokenService
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	accessTTL      time.Duration
	logger         *logger.Logger
}

// New creates a new HTTP Router instance.
func New(
	authService *service.Auth,
	userService *service.User,
	addressService *service.Address,
	tokenService *service.TokenService,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	accessTTL time.Duration,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		addressService: addressService,
		tokenService:   tokenService,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		accessTTL:      accessTTL,
		logger:         logger,
	}
}

// Register builds the route table and wraps it with logging and
// authentication middleware.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.tokenService, r.contextManager, r.accessTTL, r.logger)
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)
	addressHandler := handler.NewAddress(r.addressService, r.contextManager, r.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh-token", authHandler.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/check", authHandler.Check)
	mux.HandleFunc("POST /api/user/register", userHandler.Register)
	mux.HandleFunc("GET /api/user/me", userHandler.Me)
	mux.HandleFunc("GET /api/addresses", addressHandler.List)
	mux.HandleFunc("POST /api/addresses", addressHandler.Create)

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.userService, r.contextManager, r.logger)

	return logging.Handle(authenticate.Handle(mux))
}
