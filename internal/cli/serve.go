package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/channel-scraper/internal/api"
	"github.com/user/channel-scraper/internal/browser"
	"github.com/user/channel-scraper/internal/monitoring"
	"github.com/user/channel-scraper/internal/scraper"
	"github.com/user/channel-scraper/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for submitting scrape jobs",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()

	var cache *storage.ResolveCache
	if cfg.RedisAddr != "" {
		cache = storage.NewResolveCache(cfg.RedisAddr)
		defer cache.Close()
	}

	var pgStore *storage.PostgresStore
	if cfg.PostgresURL != "" {
		pgStore, err = storage.NewPostgresStore(ctx, cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer pgStore.Close()
	}

	metrics := monitoring.NewMetrics()
	factory := browser.NewChrome(browser.ChromeOptions{
		Headless:        cfg.Headless,
		NavTimeout:      cfg.NavTimeout(),
		OnSessionOpened: metrics.SessionsOpened.Inc,
	}, logger)
	s := scraper.New(factory, cfg, cache, metrics, logger)
	runner := api.NewJobRunner(s, logger)

	server := api.NewServer(cfg, runner, pgStore, cache, logger)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}
