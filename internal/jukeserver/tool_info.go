package jukeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/anatolykoptev/go_jukebox/internal/engine/media"
	"github.com/anatolykoptev/go_jukebox/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// infoDescriptionLimit caps the description field in tool output; full
// descriptions are often multi-KB and the host only needs a preview.
const infoDescriptionLimit = 200

func registerInfo(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_youtube_info",
		Description: "Get metadata for a YouTube video without downloading it: title, uploader, duration, view count, upload date, description preview.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.InfoInput) (*mcp.CallToolResult, engine.InfoOutput, error) {
		if input.URL == "" {
			return nil, engine.InfoOutput{}, fmt.Errorf("url is required")
		}

		cacheKey := engine.CacheKey("yt_info", input.URL)
		if out, ok := toolutil.CacheLoadJSON[engine.InfoOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		ctx, cancel := context.WithTimeout(ctx, engine.Cfg.InfoTimeout)
		defer cancel()

		var info *media.VideoInfo
		err := engine.TrackOperation(ctx, "get_youtube_info", func(ctx context.Context) error {
			var err error
			info, err = media.Info(ctx, input.URL)
			return err
		})
		if err != nil {
			return nil, engine.InfoOutput{}, fmt.Errorf("failed to get video info: %w", err)
		}

		out := engine.InfoOutput{
			Title:       info.Title,
			Uploader:    info.Uploader,
			Duration:    info.Duration,
			ViewCount:   info.ViewCount,
			UploadDate:  info.UploadDate,
			WebpageURL:  info.WebpageURL,
			Description: engine.TruncateRunes(info.Description, infoDescriptionLimit, "..."),
		}

		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
