package cmd

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

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"shopdesk/internal/auth"
	"shopdesk/internal/handlers"
	"shopdesk/internal/middleware"
	"shopdesk/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the console API",
	Long: `Start the console API used by the staff front end. The server keeps
one staff session in memory; restarting it signs everyone out.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(os.Stdout)
	if err != nil {
		return err
	}
	cfg, logger := a.cfg, a.log

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:     cfg.OTel.Enabled,
		Endpoint:    cfg.OTel.Endpoint,
		SampleRatio: cfg.OTel.SampleRatio,
		Environment: cfg.Env,
	})
	if err != nil {
		logger.Error("otel setup failed", slog.String("error", err.Error()))
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	tokens, err := auth.NewManager(cfg.Console.TokenSecret, cfg.Console.TokenTTL)
	if err != nil {
		return fmt.Errorf("console tokens: %w", err)
	}
	if cfg.Console.TokenSecret == "" {
		logger.Info("console token secret not set, using a per-process secret")
	}

	limits, closeLimits, err := a.limits(ctx)
	if err != nil {
		return err
	}
	defer closeLimits()

	server := &handlers.Server{
		Cfg:             cfg,
		Val:             a.val,
		Log:             logger,
		Tokens:          tokens,
		Sessions:        a.sessions,
		Accounts:        a.accounts,
		Recovery:        a.recovery,
		Appointments:    a.appointments,
		Projects:        a.projects,
		Catalog:         a.catalog,
		SiteInfo:        a.siteinfo,
		Stats:           a.stats,
		AppointmentView: a.appointments.NewView(),
		ProjectView:     a.projects.NewView(),
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           otelhttp.NewHandler(server.Routes(limits), "shopdesk-console"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", slog.String("addr", cfg.Server.Addr), slog.String("backend", a.client.BaseURL()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
	return nil
}

// limits builds the login and recovery limiters. They share Redis when it
// is configured so several console replicas count together.
func (a *app) limits(ctx context.Context) (handlers.Limits, func(), error) {
	cfg := a.cfg
	window := cfg.RateLimit.Window
	if cfg.Redis.URL == "" && cfg.Redis.Addr == "" {
		a.log.Info("rate limiting enabled (in-memory)", slog.Int("login", cfg.RateLimit.Login), slog.Int("recovery", cfg.RateLimit.Recovery))
		return handlers.Limits{
			Login:    middleware.NewRateLimiter(cfg.RateLimit.Login, window),
			Recovery: middleware.NewRateLimiter(cfg.RateLimit.Recovery, window),
		}, func() {}, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rdb, err := middleware.OpenRedis(pingCtx, cfg.Redis.URL, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return handlers.Limits{}, nil, fmt.Errorf("redis connection failed: %w", err)
	}
	a.log.Info("rate limiting enabled (redis)", slog.Int("login", cfg.RateLimit.Login), slog.Int("recovery", cfg.RateLimit.Recovery))
	return handlers.Limits{
		Login:    middleware.NewRedisRateLimiter(rdb, cfg.RateLimit.Login, window, "shopdesk:rl:login"),
		Recovery: middleware.NewRedisRateLimiter(rdb, cfg.RateLimit.Recovery, window, "shopdesk:rl:recovery"),
	}, func() { _ = rdb.Close() }, nil
}
