package jukeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/anatolykoptev/go_jukebox/internal/engine/player"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerStop(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "stop_playback",
		Description: "Stop the currently playing track, if any. Reports what was playing.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ engine.StopInput) (*mcp.CallToolResult, engine.StopOutput, error) {
		engine.IncrStopRequests()

		info, stopped := player.Stop()
		if !stopped {
			return nil, engine.StopOutput{
				Stopped: false,
				Message: "No track is currently playing",
			}, nil
		}
		return nil, engine.StopOutput{
			Stopped: true,
			Title:   info.Title,
			Message: fmt.Sprintf("Playback stopped: '%s'", info.Title),
		}, nil
	})
}
