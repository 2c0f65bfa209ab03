package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/ccmadmin/ccm-admin/internal/apptree"
	"github.com/ccmadmin/ccm-admin/internal/config"
	"github.com/ccmadmin/ccm-admin/internal/console"
	httpapp "github.com/ccmadmin/ccm-admin/internal/http"
	"github.com/ccmadmin/ccm-admin/internal/i18n"
	"github.com/ccmadmin/ccm-admin/internal/metrics"
	"github.com/spf13/cobra"
)

const (
	sessionCookieName = "ccm_admin_session"
	shutdownTimeout   = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin console HTTP server.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if parent == nil {
		parent = context.Background()
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	svc, queries := newAdminService(pool, reg)
	if err := svc.EnsureDefaultConfiguration(ctx); err != nil {
		return err
	}

	catalog, err := i18n.LoadEmbedded(cfg.DefaultLocale)
	if err != nil {
		return err
	}

	sessionStore := pgxstore.New(pool)
	defer sessionStore.StopCleanup()
	sessions := newSessionManager(cfg, sessionStore)

	var cons *console.Console
	if cfg.ConsoleEnabled {
		cons = console.New(pool, cfg.ConsoleMaxRows, cfg.ConsoleTimeout)
	}

	srv, err := httpapp.NewEchoServer(cfg, svc, apptree.NewProvider(reg, queries), cons, catalog, sessions)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	_, metricsErrCh := metrics.StartServer(ctx, cfg.MetricsAddr)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr, "application_types", len(reg.Types()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-metricsErrCh:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return err
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func newSessionManager(cfg config.Config, store scs.Store) *scs.SessionManager {
	sessions := scs.New()
	sessions.Store = store
	sessions.Lifetime = cfg.SessionLifetime
	sessions.Cookie.Name = sessionCookieName
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = cfg.AuthCookieSecure
	return sessions
}
