package jukeserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all jukebox tools on the given MCP server:
// search_youtube_music, download_youtube_music, get_youtube_info,
// list_music_library, play_song, stop_playback, test_ytdlp.
func RegisterTools(server *mcp.Server) {
	registerSearch(server)
	registerDownload(server)
	registerInfo(server)
	registerLibraryList(server)
	registerPlay(server)
	registerStop(server)
	registerProbe(server)
}
