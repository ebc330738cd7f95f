package jukeserver

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/anatolykoptev/go_jukebox/internal/engine/library"
	"github.com/anatolykoptev/go_jukebox/internal/engine/media"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerDownload(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "download_youtube_music",
		Description: "Find a song on YouTube, download the best audio, and convert it to MP3 in the configured download directory. The file is named after the video title and recorded in the local music library. Accepts a free-text query or a YouTube URL.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.DownloadInput) (*mcp.CallToolResult, engine.DownloadOutput, error) {
		if input.Query == "" {
			return nil, engine.DownloadOutput{}, fmt.Errorf("query is required")
		}

		ctx, cancel := context.WithTimeout(ctx, engine.Cfg.DownloadTimeout)
		defer cancel()

		res, err := media.Download(ctx, input.Query)
		if err != nil {
			return nil, engine.DownloadOutput{}, fmt.Errorf("download failed: %w", err)
		}

		if res.FilePath == "" {
			slog.Warn("download reported no files", slog.String("query", input.Query))
			return nil, engine.DownloadOutput{
				Query:   input.Query,
				Title:   res.Title,
				Message: fmt.Sprintf("Download completed for: %s, but no files were reported", input.Query),
			}, nil
		}

		title := res.Title
		if title == "" {
			title = "Unknown"
		}
		artist := res.Artist
		if artist == "" {
			artist = "Unknown Artist"
		}
		track, added, err := library.Add(ctx, library.Track{
			Title:         title,
			Artist:        artist,
			FilePath:      res.FilePath,
			Duration:      res.Duration,
			OriginalQuery: input.Query,
			YouTubeURL:    res.WebpageURL,
		})
		if err != nil {
			return nil, engine.DownloadOutput{}, fmt.Errorf("library update failed: %w", err)
		}

		libraryNote := "Added to music library database."
		if !added {
			libraryNote = "Track already in music library database."
		}

		filename := filepath.Base(track.FilePath)
		return nil, engine.DownloadOutput{
			Query:      input.Query,
			Title:      track.Title,
			Artist:     track.Artist,
			Filename:   filename,
			FilePath:   track.FilePath,
			YouTubeURL: track.YouTubeURL,
			LibraryID:  track.ID,
			Message: fmt.Sprintf("Successfully downloaded song: '%s' by %s\nFile saved as: %s\n%s",
				track.Title, track.Artist, filename, libraryNote),
		}, nil
	})
}
