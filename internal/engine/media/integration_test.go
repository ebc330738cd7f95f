//go:build integration

package media

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
)

func initTestEngine(downloadDir string) {
	engine.Init(engine.Config{
		DownloadPath:    downloadDir,
		SearchLimit:     1,
		AudioQuality:    "192",
		SearchTimeout:   30 * time.Second,
		InfoTimeout:     30 * time.Second,
		DownloadTimeout: 5 * time.Minute,
		YouTubeRPS:      1,
		YouTubeBurst:    2,
	})
}

func TestIntegration_Probe(t *testing.T) {
	initTestEngine(t.TempDir())
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	probe, err := Probe(ctx)
	if err != nil {
		t.Fatalf("Probe error: %v", err)
	}
	if probe.Executable == "" {
		t.Error("expected non-empty executable path")
	}
	if probe.Version == "" {
		t.Error("expected non-empty version")
	}
	t.Logf("✓ yt-dlp %s at %s", probe.Version, probe.Executable)
}

func TestIntegration_Search(t *testing.T) {
	initTestEngine(t.TempDir())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hits, err := Search(ctx, "rick astley never gonna give you up", 3)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least 1 hit")
	}
	for _, h := range hits {
		if !strings.HasPrefix(h.URL, "https://www.youtube.com/watch?v=") {
			t.Errorf("malformed watch URL: %q", h.URL)
		}
		if h.Title == "" {
			t.Error("hit with empty title")
		}
	}
	t.Logf("✓ Search: %d hits, top: %s | %s", len(hits), hits[0].Title, hits[0].URL)
}

func TestIntegration_Info(t *testing.T) {
	initTestEngine(t.TempDir())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// "Me at the zoo", the first video on YouTube. Stable metadata.
	info, err := Info(ctx, "https://www.youtube.com/watch?v=jNQXAC9IVRw")
	if err != nil {
		t.Fatalf("Info error: %v", err)
	}
	if info.Title == "" {
		t.Error("expected non-empty title")
	}
	if info.Duration <= 0 {
		t.Errorf("expected positive duration, got %v", info.Duration)
	}
	if info.Artist() == "Unknown Artist" {
		t.Error("expected uploader or channel to be set")
	}
	t.Logf("✓ Info: %s by %s (%vs, %d views)", info.Title, info.Artist(), info.Duration, info.ViewCount)
}

func TestIntegration_Info_InvalidVideo(t *testing.T) {
	initTestEngine(t.TempDir())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := Info(ctx, "https://www.youtube.com/watch?v=00000000000")
	if err == nil {
		t.Error("expected error for non-existent video")
	}
	t.Logf("✓ invalid video reported as error: %v", err)
}

func TestIntegration_Download(t *testing.T) {
	dir := t.TempDir()
	initTestEngine(dir)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// 19s video keeps the download small.
	res, err := Download(ctx, "https://www.youtube.com/watch?v=jNQXAC9IVRw")
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}
	if res.FilePath == "" {
		t.Fatal("expected a reported file path")
	}
	if !strings.HasSuffix(strings.ToLower(res.FilePath), ".mp3") {
		t.Errorf("expected .mp3 output, got %q", res.FilePath)
	}
	if !strings.HasPrefix(res.FilePath, dir) {
		t.Errorf("file landed outside download dir: %q", res.FilePath)
	}
	if _, err := os.Stat(res.FilePath); err != nil {
		t.Errorf("reported file missing on disk: %v", err)
	}
	t.Logf("✓ Download: %s by %s → %s", res.Title, res.Artist, res.FilePath)
}
