package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests   atomic.Int64
	DownloadRequests atomic.Int64
	DownloadErrors   atomic.Int64
	InfoRequests     atomic.Int64
	ProbeRequests    atomic.Int64
	PlayRequests     atomic.Int64
	StopRequests     atomic.Int64
	LibraryQueries   atomic.Int64
	TracksDownloaded atomic.Int64
	YtdlpErrors      atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"search_requests":   metrics.SearchRequests.Load(),
		"download_requests": metrics.DownloadRequests.Load(),
		"download_errors":   metrics.DownloadErrors.Load(),
		"info_requests":     metrics.InfoRequests.Load(),
		"probe_requests":    metrics.ProbeRequests.Load(),
		"play_requests":     metrics.PlayRequests.Load(),
		"stop_requests":     metrics.StopRequests.Load(),
		"library_queries":   metrics.LibraryQueries.Load(),
		"tracks_downloaded": metrics.TracksDownloaded.Load(),
		"ytdlp_errors":      metrics.YtdlpErrors.Load(),
		"cache_hits":        hits,
		"cache_misses":      misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"search_requests",
		"download_requests", "download_errors", "tracks_downloaded",
		"info_requests", "probe_requests",
		"play_requests", "stop_requests",
		"library_queries", "ytdlp_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the tool layer.
func IncrSearchRequests()   { metrics.SearchRequests.Add(1) }
func IncrDownloadRequests() { metrics.DownloadRequests.Add(1) }
func IncrInfoRequests()     { metrics.InfoRequests.Add(1) }
func IncrProbeRequests()    { metrics.ProbeRequests.Add(1) }
func IncrPlayRequests()     { metrics.PlayRequests.Add(1) }
func IncrStopRequests()     { metrics.StopRequests.Add(1) }
func IncrLibraryQueries()   { metrics.LibraryQueries.Add(1) }

// Incrementors for the media sub-package.
func IncrDownloadErrors()   { metrics.DownloadErrors.Add(1) }
func IncrTracksDownloaded() { metrics.TracksDownloaded.Add(1) }
func IncrYtdlpErrors()      { metrics.YtdlpErrors.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
