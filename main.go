// go_jukebox — YouTube Music MCP server.
//
// Exposes jukebox tools to an LLM tool-calling host: search_youtube_music,
// download_youtube_music, get_youtube_info, list_music_library, play_song,
// stop_playback, test_ytdlp. Search, extraction and MP3 conversion are
// delegated to yt-dlp; local playback to ffplay.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/anatolykoptev/go_jukebox/internal/jukeserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	// .env first: every env.* read below must see it. Missing file is fine.
	_ = godotenv.Load()

	initLogging()
	initEngine()

	mcpPort := env.Str("MCP_PORT", "8892")

	slog.Info("starting go_jukebox",
		slog.String("port", mcpPort),
		slog.String("download_path", engine.Cfg.DownloadPath),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_jukebox",
		Version: version,
	}, nil)

	jukeserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 7))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_jukebox",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

// initLogging sends debug-level logs to stderr plus the configured log file.
// stdout stays clean for the stdio MCP transport.
func initLogging() {
	w := io.Writer(os.Stderr)
	logFile := env.Str("LOG_FILE", "go_jukebox_debug.log")
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			slog.Warn("log file unavailable, stderr only", slog.String("path", logFile), slog.Any("error", err))
		} else {
			w = io.MultiWriter(os.Stderr, f)
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func initEngine() {
	c := engine.Config{
		DownloadPath:         env.Str("DOWNLOAD_PATH", "./"),
		SearchLimit:          env.Int("SEARCH_LIMIT", 1),
		AudioQuality:         env.Str("AUDIO_QUALITY", "192"),
		PlayerBin:            env.Str("PLAYER_BIN", "ffplay"),
		SearchTimeout:        env.Duration("SEARCH_TIMEOUT", 30*time.Second),
		InfoTimeout:          env.Duration("INFO_TIMEOUT", 30*time.Second),
		DownloadTimeout:      env.Duration("DOWNLOAD_TIMEOUT", 10*time.Minute),
		YouTubeRPS:           env.Float("YOUTUBE_RPS", 1.0),
		YouTubeBurst:         env.Int("YOUTUBE_BURST", 2),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	}

	if err := os.MkdirAll(c.DownloadPath, 0750); err != nil {
		slog.Error("download path unavailable", slog.String("path", c.DownloadPath), slog.Any("error", err))
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
