package engine

import (
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	DownloadPath         string // output directory for MP3s and the library DB
	SearchLimit          int    // ytsearch result count for the search tool
	AudioQuality         string // MP3 bitrate passed to the converter, e.g. "192"
	PlayerBin            string // playback binary, e.g. "ffplay"
	SearchTimeout        time.Duration
	InfoTimeout          time.Duration
	DownloadTimeout      time.Duration
	YouTubeRPS           float64 // rate limit for YouTube-touching subprocess calls
	YouTubeBurst         int
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (media, library, player).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
