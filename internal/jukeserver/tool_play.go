package jukeserver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/anatolykoptev/go_jukebox/internal/engine/library"
	"github.com/anatolykoptev/go_jukebox/internal/engine/player"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPlay(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "play_song",
		Description: "Play a track from the music library on the server's audio output. Identify the track by library ID or a title fragment. Anything already playing is stopped first.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.PlayInput) (*mcp.CallToolResult, engine.PlayOutput, error) {
		engine.IncrPlayRequests()

		identifier := strings.TrimSpace(input.Identifier)
		if identifier == "" {
			return nil, engine.PlayOutput{}, fmt.Errorf("identifier is required")
		}

		matches, err := library.Resolve(ctx, identifier)
		if err != nil {
			return nil, engine.PlayOutput{}, err
		}
		if len(matches) == 0 {
			if isNumericID(identifier) {
				return nil, engine.PlayOutput{}, fmt.Errorf("No track found with ID: %s", identifier)
			}
			return nil, engine.PlayOutput{}, fmt.Errorf("No track found matching title: %s", identifier)
		}
		if len(matches) > 1 {
			lines := []string{"Multiple matches found. Please be more specific or use ID:"}
			for i, t := range matches {
				if i >= 5 {
					break
				}
				lines = append(lines, fmt.Sprintf("ID %d: %s", t.ID, engine.TruncateAtWord(t.Title, 60)))
			}
			return nil, engine.PlayOutput{}, errors.New(strings.Join(lines, "\n"))
		}

		t := matches[0]
		if _, err := os.Stat(t.FilePath); err != nil {
			return nil, engine.PlayOutput{}, fmt.Errorf("Audio file not found: %s", t.FilePath)
		}
		if !player.SupportedFormat(t.FilePath) {
			return nil, engine.PlayOutput{}, fmt.Errorf("Unsupported audio format: %s. Try re-downloading to get .mp3 format.", filepath.Ext(t.FilePath))
		}

		np, err := player.Play(t.ID, t.Title, t.Artist, t.FilePath)
		if err != nil {
			return nil, engine.PlayOutput{}, fmt.Errorf("playback failed: %w", err)
		}

		artist := t.Artist
		if artist == "" {
			artist = "Unknown Artist"
		}
		return nil, engine.PlayOutput{
			ID:        t.ID,
			Title:     t.Title,
			Artist:    artist,
			SessionID: np.SessionID,
			Message:   fmt.Sprintf("Now playing: '%s' by %s", t.Title, artist),
		}, nil
	})
}

// isNumericID mirrors the library's identifier dispatch: all digits means
// the lookup ran against the track ID, not the title.
func isNumericID(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
