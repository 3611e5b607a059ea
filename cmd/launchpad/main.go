package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/horndawg/launchpad/internal/auth"
	"github.com/horndawg/launchpad/internal/backoffice"
	"github.com/horndawg/launchpad/internal/catalog"
	"github.com/horndawg/launchpad/internal/config"
	"github.com/horndawg/launchpad/internal/database"
	"github.com/horndawg/launchpad/internal/emailqueue"
	"github.com/horndawg/launchpad/internal/logging"
	"github.com/horndawg/launchpad/internal/mail"
	"github.com/horndawg/launchpad/internal/ratelimit"
	"github.com/horndawg/launchpad/internal/reservation"
	"github.com/horndawg/launchpad/internal/store/postgres"
	"github.com/horndawg/launchpad/internal/web"
	"github.com/horndawg/launchpad/internal/web/handlers"
	"github.com/horndawg/launchpad/internal/web/render"
	"github.com/horndawg/launchpad/migrations"
	"github.com/horndawg/launchpad/static"
	"github.com/horndawg/launchpad/templates"
)

func main() {
	if err := run(); err != nil {
		slog.Error("launchpad exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	_, logCloser := logging.Setup(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := postgres.NewDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(migrations.FS, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Stores
	userStore := postgres.NewAdminUserStore(db)
	sessionStore := postgres.NewSessionStore(db)
	settingStore := postgres.NewSettingStore(db)
	orderStore := postgres.NewOrderStore(db)
	contactStore := postgres.NewContactMessageStore(db)
	emailJobStore := postgres.NewEmailJobStore(db)

	// Services
	authService := auth.NewService(userStore, sessionStore, cfg.SessionMaxAge)
	if cfg.AdminConfigured() {
		created, err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail)
		if err != nil {
			return fmt.Errorf("ensure admin user: %w", err)
		}
		if created {
			slog.Info("admin user created", "username", cfg.AdminUsername)
		}
	} else {
		slog.Warn("ADMIN_USERNAME, ADMIN_PASSWORD or ADMIN_EMAIL not set, skipping admin bootstrap")
	}

	prices := catalog.NewPriceService(settingStore, cfg.ProductPrice)
	if err := prices.SeedDefault(ctx); err != nil {
		return err
	}

	var transport mail.Transport
	if cfg.SMTPEnabled {
		transport = mail.NewSMTPClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	} else {
		slog.Warn("SMTP_HOST not set, emails will be logged instead of sent")
		transport = mail.LogTransport{}
	}

	queue := emailqueue.NewQueue(emailJobStore)
	dispatcher := emailqueue.NewDispatcher(emailJobStore, transport, cfg.EmailFrom, emailqueue.Options{
		Interval:    cfg.EmailInterval(),
		MaxAttempts: cfg.EmailMaxAttempts,
	})

	intake := reservation.NewService(orderStore, contactStore, prices, queue)
	office := backoffice.NewService(orderStore, contactStore, prices, queue, intake)

	limiter := ratelimit.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	renderer, err := render.NewRenderer(templates.FS)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	router := web.NewRouter(web.RouterDeps{
		PageHandler:    handlers.NewPageHandler(renderer),
		APIHandler:     handlers.NewAPIHandler(intake),
		AuthHandler:    handlers.NewAuthHandler(authService, renderer, cfg.SecureCookies),
		AdminHandler:   handlers.NewAdminHandler(office, renderer, cfg.SecureCookies),
		Sessions:       authService,
		DB:             db,
		Limiter:        limiter,
		StaticFS:       static.FS,
		MaxUploadBytes: int64(cfg.MaxUploadMB) << 20,
		SecureCookies:  cfg.SecureCookies,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("launchpad starting", "addr", addr, "base_url", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		dispatcher.Run(gctx)
		return nil
	})

	g.Go(func() error {
		limiter.Run(gctx)
		return nil
	})

	g.Go(func() error {
		sweepSessions(gctx, authService)
		return nil
	})

	return g.Wait()
}

func sweepSessions(ctx context.Context, authService *auth.Service) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := authService.PurgeExpiredSessions(ctx); err != nil {
				slog.Error("failed to clean up expired sessions", "error", err)
			}
		}
	}
}
