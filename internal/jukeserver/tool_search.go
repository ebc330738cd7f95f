package jukeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/anatolykoptev/go_jukebox/internal/engine/media"
	"github.com/anatolykoptev/go_jukebox/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSearch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_youtube_music",
		Description: "Search YouTube for music. Returns the top result's watch URL plus title, uploader, and duration. Feed the URL to download_youtube_music or get_youtube_info.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SearchInput) (*mcp.CallToolResult, engine.SearchOutput, error) {
		if input.Query == "" {
			return nil, engine.SearchOutput{}, fmt.Errorf("query is required")
		}

		cacheKey := engine.CacheKey("yt_search", input.Query)
		if out, ok := toolutil.CacheLoadJSON[engine.SearchOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		ctx, cancel := context.WithTimeout(ctx, engine.Cfg.SearchTimeout)
		defer cancel()

		hits, err := media.Search(ctx, input.Query, engine.Cfg.SearchLimit)
		if err != nil {
			return nil, engine.SearchOutput{}, fmt.Errorf("search failed: %w", err)
		}
		if len(hits) == 0 {
			return nil, engine.SearchOutput{
				Query:   input.Query,
				Message: "No results found for: " + input.Query,
			}, nil
		}

		top := hits[0]
		out := engine.SearchOutput{
			Query:    input.Query,
			URL:      top.URL,
			Title:    top.Title,
			Uploader: top.Uploader,
			Duration: top.Duration,
			Message:  top.URL,
		}
		for _, h := range hits[1:] {
			out.Results = append(out.Results, engine.SearchHit{
				ID:       h.ID,
				Title:    h.Title,
				Uploader: h.Uploader,
				URL:      h.URL,
				Duration: h.Duration,
			})
		}

		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
