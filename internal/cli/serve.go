package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Boredoom17/portfolio/internal/config"
	"github.com/Boredoom17/portfolio/internal/metrics"
	"github.com/Boredoom17/portfolio/internal/server"
	"github.com/Boredoom17/portfolio/internal/site"
	"github.com/Boredoom17/portfolio/internal/visits"
)

func newServeCmd(load func() (config.Config, error)) *cobra.Command {
	var (
		addr string
		dev  bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		Long: `Serve renders the Home, Projects, About and Contact views on
/, /projects, /about and /contact. With --dev, templates are read from
./internal/site/templates and reloaded on change.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if dev {
				cfg.GinMode = gin.DebugMode
				cfg.LogLevel = "debug"
				if cfg.TemplatesDir == "" {
					cfg.TemplatesDir = "./internal/site/templates"
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&dev, "dev", false, "development mode: debug logs and template reload")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := cfg.Logger()
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	m := metrics.New()
	s, err := site.New(site.Options{
		PublicDir:        cfg.PublicDir,
		TemplatesDir:     cfg.TemplatesDir,
		OnAvatarFallback: m.AvatarFallbacks.Inc,
		Logger:           logger,
	})
	if err != nil {
		return fmt.Errorf("init site: %w", err)
	}

	var store *visits.Store
	if cfg.DBPath != "" {
		store, err = visits.Open(ctx, cfg.DBPath, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("visit tracking enabled with hashed IP addresses", "db", cfg.DBPath)
	}
	if cfg.AdminToken != "" && store == nil {
		logger.Warn("admin token set but visit tracking is disabled; admin routes not mounted")
	}

	srv := server.New(server.Options{
		Addr:           cfg.Addr,
		PublicDir:      cfg.PublicDir,
		AdminToken:     cfg.AdminToken,
		VisitRetention: cfg.VisitRetention,
	}, s, store, m, logger)
	return srv.ListenAndServe(ctx)
}
