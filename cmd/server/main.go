package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"minhas-financas/internal/auth"
	"minhas-financas/internal/config"
	apphttp "minhas-financas/internal/http"
	"minhas-financas/internal/logging"
	"minhas-financas/internal/repository/sqlite"
	"minhas-financas/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	entryRepo := sqlite.NewEntryRepository(db)
	if err := sqlite.Migrate(ctx, userRepo, entryRepo); err != nil {
		logger.Fatalf("init repositories: %v", err)
	}

	passwords, err := service.NewPasswordEncoder(cfg.Auth.PasswordEncoder)
	if err != nil {
		logger.Fatalf("password encoder: %v", err)
	}
	if _, plain := passwords.(service.PlainPasswordEncoder); plain {
		logger.Warn("passwords are stored and returned in plain text; set FINANCAS_AUTH_PASSWORDENCODER=bcrypt to hash them")
	}

	userService := service.NewUserService(userRepo, passwords)
	ledgerService := service.NewLedgerService(entryRepo, userRepo)

	var tokens *auth.TokenIssuer
	if strings.TrimSpace(cfg.Auth.JWTSecret) != "" {
		tokens, err = auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
		if err != nil {
			logger.Fatalf("token issuer: %v", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, ledgerService, apphttp.Options{
		Tokens:         tokens,
		AllowedOrigins: cfg.Origins(),
		Logger:         logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{"addr": cfg.Server.Addr, "db": cfg.Database.Path}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
