package media

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/lrstanley/go-ytdlp"
)

// Search runs a flat yt-dlp search (no download) and returns the hits in
// ranking order. limit is clamped to 1..10.
func Search(ctx context.Context, query string, limit int) ([]VideoInfo, error) {
	engine.IncrSearchRequests()
	if limit <= 0 {
		limit = 1
	}
	if limit > 10 {
		limit = 10
	}

	if err := waitYouTube(ctx); err != nil {
		return nil, err
	}

	slog.Info("searching youtube", slog.String("query", query), slog.Int("limit", limit))
	start := time.Now()

	dl := ytdlp.New().
		DumpJSON().
		FlatPlaylist()

	result, err := dl.Run(ctx, resolveTarget(query, limit))
	if err != nil {
		engine.IncrYtdlpErrors()
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := parseInfoLines(result.Stdout)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	for i := range hits {
		if hits[i].ID != "" {
			hits[i].URL = WatchURL(hits[i].ID)
		}
	}

	slog.Info("search completed",
		slog.Int("hits", len(hits)),
		slog.Float64("elapsed_sec", time.Since(start).Seconds()),
	)
	return hits, nil
}
