package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/lrstanley/go-ytdlp"
)

// Download fetches best audio for the query (a URL passes through, anything
// else is searched), converts it to MP3 under the configured download path,
// and reports what landed on disk. An empty FilePath means yt-dlp finished
// without reporting any output file.
func Download(ctx context.Context, query string) (*DownloadResult, error) {
	engine.IncrDownloadRequests()

	if err := waitYouTube(ctx); err != nil {
		return nil, err
	}

	outTmpl := filepath.Join(engine.Cfg.DownloadPath, "%(title)s.%(ext)s")
	slog.Info("starting download", slog.String("query", query), slog.String("template", outTmpl))
	start := time.Now()

	dl := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality(engine.Cfg.AudioQuality).
		NoPlaylist().
		Output(outTmpl).
		PrintJSON()

	dl.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
		if update.TotalBytes > 0 {
			percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
			slog.Debug("download progress",
				slog.Int("percent", int(percent)),
				slog.Duration("eta", update.ETA()),
			)
		}
	})

	result, err := dl.Run(ctx, resolveTarget(query, 1))
	if err != nil {
		engine.IncrYtdlpErrors()
		engine.IncrDownloadErrors()
		return nil, fmt.Errorf("download: %w", err)
	}

	infos := parseInfoLines(result.Stdout)
	res := &DownloadResult{}
	if len(infos) > 0 {
		info := infos[0]
		res.Title = info.Title
		res.Artist = info.Artist()
		res.Duration = info.Duration
		res.WebpageURL = info.WebpageURL
	}

	res.FilePath = finalizeAudioPath(reportedFile(result, infos))
	if res.FilePath != "" {
		engine.IncrTracksDownloaded()
	}

	slog.Info("download completed",
		slog.String("title", res.Title),
		slog.String("file", res.FilePath),
		slog.Float64("elapsed_sec", time.Since(start).Seconds()),
	)
	return res, nil
}

// reportedFile picks the downloaded file path out of yt-dlp's output:
// post-processed requested_downloads first, then the extracted info
// filename, then the raw filename field.
func reportedFile(result *ytdlp.Result, infos []VideoInfo) string {
	for _, info := range infos {
		for _, rd := range info.RequestedDownloads {
			if rd.Filepath != "" {
				return rd.Filepath
			}
		}
	}
	if extracted, err := result.GetExtractedInfo(); err == nil {
		for _, info := range extracted {
			if info.Filename != nil && *info.Filename != "" {
				return *info.Filename
			}
		}
	}
	for _, info := range infos {
		if info.Filename != "" {
			return info.Filename
		}
	}
	return ""
}

// finalizeAudioPath rewrites the reported media filename to its post-
// conversion .mp3 name. The conversion step renames the file after the
// download report, so the .mp3 sibling wins when it exists.
func finalizeAudioPath(path string) string {
	if path == "" {
		return ""
	}
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".mp3") {
		return path
	}
	converted := strings.TrimSuffix(path, ext) + ".mp3"
	if _, err := os.Stat(converted); err == nil {
		return converted
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	slog.Warn("downloaded file missing on disk", slog.String("reported", path))
	return converted
}
