package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/identityx/identityx-api/internal/api/http/context"
	"github.com/identityx/identityx-api/internal/api/http/router"
	"github.com/identityx/identityx-api/internal/config"
	"github.com/identityx/identityx-api/internal/hash"
	"github.com/identityx/identityx-api/internal/logger"
	"github.com/identityx/identityx-api/internal/model"
	"github.com/identityx/identityx-api/internal/repository/postgres"
	"github.com/identityx/identityx-api/internal/server"
	"github.com/identityx/identityx-api/internal/service"
	"github.com/identityx/identityx-api/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	addressRepo := postgres.NewAddressRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL)
	refreshProvider := token.NewRefreshProvider(cfg.JWT.RefreshTTL)
	hasher := hash.NewBcrypt()
	ctxMgr := httpctx.NewManager()

	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, userRepo, refreshProvider, logger)
	authService := service.NewAuth(userRepo, hasher, tokenService, logger)
	userService := service.NewUser(userRepo, hasher, logger)
	addressService := service.NewAddress(addressRepo, logger)

	httpServer := registerHTTPServer(
		logger,
		authService,
		userService,
		addressService,
		tokenService,
		tokenManager,
		ctxMgr,
		cfg.JWT.AccessTTL,
		fmt.Sprintf(":%s", cfg.HTTP.Port),
	)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	logger *logger.Logger,
	authService *service.Auth,
	userService *service.User,
	addressService *service.Address,
	tokenService *service.TokenService,
	tokenManager model.TokenManager,
	ctxMgr model.ContextManager,
	accessTTL time.Duration,
	addr string,
) *server.HTTPServer {
	r := router.New(authService, userService, addressService, tokenService, tokenManager, ctxMgr, accessTTL, logger)
	return server.NewHTTPServer(r.Register(), addr)
}
