package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/channel-scraper/internal/domain"
)

// PostgresStore persists resolution results, extracted links and engagement
// records.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

// SaveChannelResults upserts one row per resolution result, keyed by alias.
func (s *PostgresStore) SaveChannelResults(ctx context.Context, results []domain.ChannelResult) error {
	if len(results) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range results {
		batch.Queue(
			`INSERT INTO channels (alias, channel_url, status, fail_reason, resolved_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (alias) DO UPDATE SET
			   channel_url = EXCLUDED.channel_url, status = EXCLUDED.status,
			   fail_reason = EXCLUDED.fail_reason, resolved_at = EXCLUDED.resolved_at`,
			r.Alias, r.ChannelURL, string(r.Status), r.FailReason, r.ResolvedAt)
	}
	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving channel results: %w", err)
	}
	return nil
}

// SaveLinks replaces a channel's stored links with the freshly extracted
// set, one transaction per call.
func (s *PostgresStore) SaveLinks(ctx context.Context, links []domain.ExtractedLink) error {
	if len(links) == 0 {
		return nil
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	channels := make(map[string]struct{})
	for _, l := range links {
		channels[l.ChannelURL] = struct{}{}
	}
	for channelURL := range channels {
		if _, err := tx.Exec(ctx, `DELETE FROM channel_links WHERE channel_url = $1`, channelURL); err != nil {
			return err
		}
	}

	batch := &pgx.Batch{}
	for _, l := range links {
		batch.Queue(
			`INSERT INTO channel_links (channel_url, platform, raw_url, raw_text)
			 VALUES ($1, $2, $3, $4)`,
			l.ChannelURL, string(l.Platform), l.RawURL, l.RawText)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SaveEngagement upserts engagement records keyed by channel URL.
func (s *PostgresStore) SaveEngagement(ctx context.Context, records []domain.EngagementRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(
			`INSERT INTO channel_engagement (channel_url, sample_video_count, average_views, category)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (channel_url) DO UPDATE SET
			   sample_video_count = EXCLUDED.sample_video_count,
			   average_views = EXCLUDED.average_views,
			   category = EXCLUDED.category`,
			r.ChannelURL, r.SampleVideoCount, r.AverageViews, r.Category)
	}
	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving engagement records: %w", err)
	}
	return nil
}
