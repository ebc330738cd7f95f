package media

// VideoInfo mirrors the yt-dlp JSON info dict, trimmed to the fields the
// jukebox uses. Flat search entries fill a subset (id, title, url, maybe
// uploader/duration); full extraction fills everything.
type VideoInfo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Uploader    string  `json:"uploader"`
	Channel     string  `json:"channel"`
	Duration    float64 `json:"duration"`
	ViewCount   int64   `json:"view_count"`
	UploadDate  string  `json:"upload_date"`
	WebpageURL  string  `json:"webpage_url"`
	Description string  `json:"description"`
	URL         string  `json:"url"`      // flat entries: the watch URL
	Filename    string  `json:"filename"` // post-download: media file before audio extraction

	// Post-processed output files, present on --print-json after download.
	RequestedDownloads []RequestedDownload `json:"requested_downloads"`
}

// RequestedDownload is one output file of a completed download.
type RequestedDownload struct {
	Filepath string `json:"filepath"`
}

// Artist returns the uploader with the library's fallback applied.
func (v *VideoInfo) Artist() string {
	if v.Uploader != "" {
		return v.Uploader
	}
	if v.Channel != "" {
		return v.Channel
	}
	return "Unknown Artist"
}

// DownloadResult describes a finished download+conversion.
type DownloadResult struct {
	Title      string
	Artist     string
	FilePath   string // final .mp3 path; empty if yt-dlp reported no files
	Duration   float64
	WebpageURL string
}

// ProbeResult reports the resolved yt-dlp toolchain.
type ProbeResult struct {
	Executable string
	Version    string
}
