package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/config"
	"github.com/BruksfildServices01/medical-scheduler/internal/db"
	"github.com/BruksfildServices01/medical-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/medical-scheduler/internal/infra/mailer"
	"github.com/BruksfildServices01/medical-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/medical-scheduler/internal/middleware"
	"github.com/BruksfildServices01/medical-scheduler/internal/notification"
	"github.com/BruksfildServices01/medical-scheduler/internal/routes"
	"github.com/BruksfildServices01/medical-scheduler/internal/session"
	"github.com/BruksfildServices01/medical-scheduler/internal/timezone"
)

func runServer(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// STORAGE
	// ======================================================
	stores, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			logger.Error().Err(err).Msg("closing database")
		}
	}()

	// ======================================================
	// BACKGROUND WORKERS
	// ======================================================
	var sender notification.Sender = notification.NewLogSender(logger)
	if cfg.SMTPEnabled() {
		sender = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, loc)
		logger.Info().Str("host", cfg.SMTPHost).Msg("smtp notifications enabled")
	} else {
		logger.Warn().Msg("SMTP_HOST not set, notifications are only logged")
	}
	notifier := notification.NewDispatcher(sender, logger, 0)
	auditDispatcher := audit.NewDispatcher(stores.Audit, logger, audit.DefaultQueueSize)

	// drain queued emails, then audit rows, before the stores close; this
	// also runs when the listener fails to start
	defer auditDispatcher.Close()
	defer notifier.Close()

	limiter := middleware.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
	go limiter.Run(5*time.Minute, ctx.Done())

	deps := routes.Dependencies{
		Config:      cfg,
		Logger:      logger,
		Location:    loc,
		Stores:      stores,
		Sessions:    session.NewManager(cfg.JWTSecret, cfg.SessionTTL, stores.Users, logger),
		Notifier:    notifier,
		Audit:       auditDispatcher,
		AuthLimiter: limiter,
	}

	// ======================================================
	// OPTIONAL INTEGRATIONS
	// ======================================================
	if cfg.S3Enabled() {
		deps.Photos = storage.NewS3Store(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		logger.Info().Str("bucket", cfg.S3Bucket).Msg("photo storage enabled")
	}

	if cfg.RedisEnabled() {
		statsCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.StatsCacheTTL)
		if err != nil {
			return err
		}
		defer statsCache.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := statsCache.Ping(pingCtx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, stats cache disabled")
		} else {
			deps.StatsCache = statsCache
		}
		cancel()
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	logger.Info().Msg("server stopped")
	return nil
}
