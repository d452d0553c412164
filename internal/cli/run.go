package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/channel-scraper/internal/browser"
	"github.com/user/channel-scraper/internal/domain"
	"github.com/user/channel-scraper/internal/monitoring"
	"github.com/user/channel-scraper/internal/report"
	"github.com/user/channel-scraper/internal/scraper"
	"github.com/user/channel-scraper/internal/storage"
)

var (
	runInput   string
	runColumn  string
	runAliases []string
	runOutput  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline over a list of aliases",
	RunE:  runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "Excel workbook with an alias column")
	runCmd.Flags().StringVar(&runColumn, "column", "alias", "column holding the aliases in the input workbook")
	runCmd.Flags().StringSliceVar(&runAliases, "alias", nil, "alias to process (repeatable; alternative to --input)")
	runCmd.Flags().StringVar(&runOutput, "output", "channels_report.xlsx", "output workbook path")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	aliases := runAliases
	if runInput != "" {
		fromFile, err := report.ReadAliases(runInput, runColumn)
		if err != nil {
			return err
		}
		aliases = append(aliases, fromFile...)
	}
	if len(aliases) == 0 {
		return errors.New("no aliases: pass --input or --alias")
	}

	ctx := cmd.Context()

	var cache *storage.ResolveCache
	if cfg.RedisAddr != "" {
		cache = storage.NewResolveCache(cfg.RedisAddr)
		defer cache.Close()
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, running without resolve cache", zap.Error(err))
			cache = nil
		}
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

	queries := make([]domain.ChannelQuery, len(aliases))
	for i, a := range aliases {
		queries[i] = domain.ChannelQuery{Alias: a}
	}

	results, summary := s.ResolveChannels(ctx, queries)

	var found []string
	for _, r := range results {
		if r.Status == domain.StatusFound {
			found = append(found, r.ChannelURL)
		}
	}

	links := s.ExtractLinks(ctx, found)
	engagement := s.CollectEngagement(ctx, found)

	if pgStore != nil {
		if err := pgStore.SaveChannelResults(ctx, results); err != nil {
			logger.Error("persisting channel results failed", zap.Error(err))
		}
		if err := pgStore.SaveLinks(ctx, links); err != nil {
			logger.Error("persisting links failed", zap.Error(err))
		}
		if err := pgStore.SaveEngagement(ctx, engagement); err != nil {
			logger.Error("persisting engagement failed", zap.Error(err))
		}
	}

	if err := report.WriteReport(runOutput, results, scraper.Pivot(links), engagement); err != nil {
		return err
	}

	logger.Info("run finished",
		zap.Int("found", summary.Found),
		zap.Int("not_found", summary.NotFound),
		zap.Int("failed", summary.Failed),
		zap.Strings("failed_aliases", summary.FailedAliases),
		zap.String("report", runOutput))
	return nil
}
