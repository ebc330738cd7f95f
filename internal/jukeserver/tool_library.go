package jukeserver

import (
	"context"
	"path/filepath"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/anatolykoptev/go_jukebox/internal/engine/library"
	"github.com/anatolykoptev/go_jukebox/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerLibraryList(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_music_library",
		Description: "List downloaded tracks in the local music library, newest first. Optionally filter by artist or search across titles and artists. Returns track IDs usable with play_song.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.LibraryListInput) (*mcp.CallToolResult, engine.LibraryListOutput, error) {
		engine.IncrLibraryQueries()

		tracks, total, err := library.List(ctx, library.ListFilter{
			Limit:  input.Limit,
			Artist: input.Artist,
			Search: input.Search,
		})
		if err != nil {
			return nil, engine.LibraryListOutput{}, err
		}

		out := engine.LibraryListOutput{
			TotalTracks: total,
			Showing:     len(tracks),
			Tracks:      make([]engine.LibraryEntry, 0, len(tracks)),
		}
		for _, t := range tracks {
			out.Tracks = append(out.Tracks, engine.LibraryEntry{
				ID:         t.ID,
				Title:      t.Title,
				Artist:     t.Artist,
				Filename:   filepath.Base(t.FilePath),
				Duration:   toolutil.FormatClock(t.Duration),
				Downloaded: dateOnly(t.DownloadedAt),
			})
		}
		return nil, out, nil
	})
}

// dateOnly trims an RFC3339 timestamp to its date part.
func dateOnly(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
