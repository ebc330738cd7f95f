package jukeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/anatolykoptev/go_jukebox/internal/engine/media"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerProbe(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "test_ytdlp",
		Description: "Verify the yt-dlp toolchain: resolves the binary (downloading it if missing) and reports its path and version.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ engine.ProbeInput) (*mcp.CallToolResult, engine.ProbeOutput, error) {
		res, err := media.Probe(ctx)
		if err != nil {
			return nil, engine.ProbeOutput{}, fmt.Errorf("yt-dlp check failed: %w", err)
		}
		return nil, engine.ProbeOutput{
			Executable: res.Executable,
			Version:    res.Version,
			Message:    fmt.Sprintf("yt-dlp %s available at %s", res.Version, res.Executable),
		}, nil
	})
}
