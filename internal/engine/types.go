package engine

// --- Tool input types ---

type SearchInput struct {
	Query string `json:"query" jsonschema:"Song, artist, or any YouTube search phrase"`
}

type DownloadInput struct {
	Query string `json:"query" jsonschema:"Song to download (artist + title works best) or a direct YouTube URL"`
}

type InfoInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL"`
}

type PlayInput struct {
	Identifier string `json:"identifier" jsonschema:"Library track ID (number) or a title fragment"`
}

type LibraryListInput struct {
	Limit  int    `json:"limit,omitempty" jsonschema:"Max tracks to return (default 20, max 100)"`
	Artist string `json:"artist,omitempty" jsonschema:"Only tracks whose artist contains this (case-insensitive)"`
	Search string `json:"search,omitempty" jsonschema:"Only tracks whose title or artist contains this (case-insensitive)"`
}

// ProbeInput is empty: test_ytdlp takes no arguments.
type ProbeInput struct{}

// StopInput is empty: stop_playback takes no arguments.
type StopInput struct{}

// --- Tool output types (JSON responses) ---

// SearchHit is a single flat search result.
type SearchHit struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Uploader string  `json:"uploader,omitempty"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration,omitempty"` // seconds
}

type SearchOutput struct {
	Query    string      `json:"query"`
	URL      string      `json:"url"` // canonical watch URL of the top hit, empty if none
	Title    string      `json:"title,omitempty"`
	Uploader string      `json:"uploader,omitempty"`
	Duration float64     `json:"duration,omitempty"`
	Results  []SearchHit `json:"results,omitempty"` // remaining hits when search limit > 1
	Message  string      `json:"message"`
}

type DownloadOutput struct {
	Query      string `json:"query"`
	Title      string `json:"title,omitempty"`
	Artist     string `json:"artist,omitempty"`
	Filename   string `json:"filename,omitempty"`
	FilePath   string `json:"file_path,omitempty"`
	YouTubeURL string `json:"youtube_url,omitempty"`
	LibraryID  int64  `json:"library_id,omitempty"`
	Message    string `json:"message"`
}

type InfoOutput struct {
	Title       string  `json:"title"`
	Uploader    string  `json:"uploader"`
	Duration    float64 `json:"duration"` // seconds
	ViewCount   int64   `json:"view_count"`
	UploadDate  string  `json:"upload_date"` // YYYYMMDD as reported by the extractor
	WebpageURL  string  `json:"webpage_url"`
	Description string  `json:"description"` // truncated for tool output
}

// LibraryEntry is one track in a library listing, presentation-formatted.
type LibraryEntry struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist,omitempty"`
	Filename   string `json:"filename"`
	Duration   string `json:"duration,omitempty"` // "3:41"
	Downloaded string `json:"downloaded"`         // YYYY-MM-DD
}

type LibraryListOutput struct {
	TotalTracks int            `json:"total_tracks"`
	Showing     int            `json:"showing"`
	Tracks      []LibraryEntry `json:"tracks"`
}

type ProbeOutput struct {
	Executable string `json:"executable"`
	Version    string `json:"version"`
	Message    string `json:"message"`
}

type PlayOutput struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist,omitempty"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type StopOutput struct {
	Stopped bool   `json:"stopped"`
	Title   string `json:"title,omitempty"` // what was playing, if anything
	Message string `json:"message"`
}
