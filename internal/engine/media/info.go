package media

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/lrstanley/go-ytdlp"
)

// Info extracts metadata for a single video without downloading it.
func Info(ctx context.Context, url string) (*VideoInfo, error) {
	engine.IncrInfoRequests()

	if err := waitYouTube(ctx); err != nil {
		return nil, err
	}

	slog.Info("fetching video info", slog.String("url", url))
	start := time.Now()

	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist()

	result, err := dl.Run(ctx, url)
	if err != nil {
		engine.IncrYtdlpErrors()
		return nil, fmt.Errorf("video info: %w", err)
	}

	var info VideoInfo
	if err := json.Unmarshal([]byte(strings.TrimSpace(result.Stdout)), &info); err != nil {
		engine.IncrYtdlpErrors()
		return nil, fmt.Errorf("video info: decode: %w", err)
	}

	slog.Info("info completed",
		slog.String("title", info.Title),
		slog.Float64("elapsed_sec", time.Since(start).Seconds()),
	)
	return &info, nil
}
