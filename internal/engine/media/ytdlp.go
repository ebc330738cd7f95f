// Package media wraps the yt-dlp toolchain: flat YouTube search, audio
// download with MP3 conversion, metadata extraction, and a binary probe.
package media

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/lrstanley/go-ytdlp"
)

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// extractVideoID pulls the 11-char video ID from any YouTube URL format.
func extractVideoID(rawURL string) string {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) >= 2 {
		return m[1]
	}
	return ""
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// resolveTarget turns a user query into a yt-dlp target: URLs pass through,
// anything else becomes a ytsearch expression.
func resolveTarget(query string, limit int) string {
	if extractVideoID(query) != "" {
		return query
	}
	if limit <= 1 {
		return "ytsearch1:" + query
	}
	return fmt.Sprintf("ytsearch%d:%s", limit, query)
}

// parseInfoLines decodes yt-dlp's JSON-lines stdout (one info dict per line).
// Lines that are not JSON objects are skipped.
func parseInfoLines(stdout string) []VideoInfo {
	var infos []VideoInfo
	sc := bufio.NewScanner(strings.NewReader(stdout))
	// Full info dicts carry the formats table and can run well past the
	// default scanner limit.
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		var info VideoInfo
		if err := json.Unmarshal([]byte(line), &info); err != nil {
			slog.Debug("ytdlp: skipping unparseable output line", slog.Any("error", err))
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

// Probe resolves the yt-dlp binary, downloading it if not installed,
// and reports its location and version.
func Probe(ctx context.Context) (*ProbeResult, error) {
	engine.IncrProbeRequests()

	resolved, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{})
	if err != nil {
		engine.IncrYtdlpErrors()
		return nil, fmt.Errorf("ytdlp probe: %w", err)
	}

	slog.Info("ytdlp probe ok",
		slog.String("executable", resolved.Executable),
		slog.String("version", resolved.Version),
	)
	return &ProbeResult{Executable: resolved.Executable, Version: resolved.Version}, nil
}
