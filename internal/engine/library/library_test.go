package library

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
)

// resetLibrary points the library at a fresh temp dir and clears the singleton.
func resetLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	engine.Init(engine.Config{DownloadPath: dir})
	libraryDB = nil
	libraryErr = nil
	libraryOnce = sync.Once{}
	return dir
}

func TestAdd_Basic(t *testing.T) {
	dir := resetLibrary(t)
	ctx := context.Background()

	track, added, err := Add(ctx, Track{
		Title:         "Bohemian Rhapsody",
		Artist:        "Queen",
		FilePath:      filepath.Join(dir, "Bohemian Rhapsody.mp3"),
		Duration:      354,
		OriginalQuery: "bohemian rhapsody queen",
		YouTubeURL:    "https://www.youtube.com/watch?v=fJ9rUzIMcZQ",
	})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if !added {
		t.Error("expected added=true for new track")
	}
	if track.ID <= 0 {
		t.Errorf("expected positive ID, got %d", track.ID)
	}
	if track.DownloadedAt == "" {
		t.Error("expected downloaded_at to be set")
	}
}

func TestAdd_Duplicate(t *testing.T) {
	dir := resetLibrary(t)
	ctx := context.Background()

	path := filepath.Join(dir, "song.mp3")
	first, added, err := Add(ctx, Track{Title: "Song", FilePath: path})
	if err != nil {
		t.Fatalf("first Add error: %v", err)
	}
	if !added {
		t.Error("expected added=true on first insert")
	}

	second, added, err := Add(ctx, Track{Title: "Song", FilePath: path})
	if err != nil {
		t.Fatalf("second Add error: %v", err)
	}
	if added {
		t.Error("expected added=false for duplicate file_path")
	}
	if second.ID != first.ID {
		t.Errorf("duplicate returned ID %d, want existing ID %d", second.ID, first.ID)
	}
}

func TestAdd_MissingRequired(t *testing.T) {
	resetLibrary(t)
	ctx := context.Background()

	_, _, err := Add(ctx, Track{Title: "No Path"})
	if err == nil {
		t.Error("expected error when file_path is missing")
	}

	_, _, err = Add(ctx, Track{FilePath: "/tmp/no-title.mp3"})
	if err == nil {
		t.Error("expected error when title is missing")
	}
}

func TestList_Empty(t *testing.T) {
	resetLibrary(t)
	ctx := context.Background()

	tracks, total, err := List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 0 {
		t.Errorf("expected 0 total, got %d", total)
	}
	if tracks == nil {
		t.Error("tracks should not be nil")
	}
	if len(tracks) != 0 {
		t.Errorf("expected 0 tracks, got %d", len(tracks))
	}
}

func TestList_WithData(t *testing.T) {
	dir := resetLibrary(t)
	ctx := context.Background()

	for _, tc := range []struct {
		title, artist string
	}{
		{"One More Time", "Daft Punk"},
		{"Around the World", "Daft Punk"},
		{"Windowlicker", "Aphex Twin"},
	} {
		_, _, err := Add(ctx, Track{
			Title:    tc.title,
			Artist:   tc.artist,
			FilePath: filepath.Join(dir, tc.title+".mp3"),
		})
		if err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}

	// List all.
	all, total, err := List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(all) != 3 {
		t.Errorf("tracks len = %d, want 3", len(all))
	}

	// Filter by artist, case-insensitive.
	daft, total, err := List(ctx, ListFilter{Artist: "daft"})
	if err != nil {
		t.Fatalf("List artist filter error: %v", err)
	}
	if total != 2 {
		t.Errorf("daft punk total = %d, want 2", total)
	}
	for _, tr := range daft {
		if tr.Artist != "Daft Punk" {
			t.Errorf("artist filter leaked track by %q", tr.Artist)
		}
	}

	// Search matches titles.
	world, total, err := List(ctx, ListFilter{Search: "world"})
	if err != nil {
		t.Fatalf("List search filter error: %v", err)
	}
	if total != 1 {
		t.Errorf("search total = %d, want 1", total)
	}
	if world[0].Title != "Around the World" {
		t.Errorf("search returned %q", world[0].Title)
	}

	// Search matches artists too.
	_, total, err = List(ctx, ListFilter{Search: "aphex"})
	if err != nil {
		t.Fatalf("List search filter error: %v", err)
	}
	if total != 1 {
		t.Errorf("artist search total = %d, want 1", total)
	}
}

func TestList_Limit(t *testing.T) {
	dir := resetLibrary(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := Add(ctx, Track{
			Title:    "Track " + strconv.Itoa(i),
			FilePath: filepath.Join(dir, "track-"+strconv.Itoa(i)+".mp3"),
		})
		if err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}

	tracks, total, err := List(ctx, ListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5 (total counts all matches)", total)
	}
	if len(tracks) != 2 {
		t.Errorf("tracks len = %d, want 2", len(tracks))
	}
}

func TestResolve_ByID(t *testing.T) {
	dir := resetLibrary(t)
	ctx := context.Background()

	added, _, err := Add(ctx, Track{
		Title:    "Clair de Lune",
		Artist:   "Debussy",
		FilePath: filepath.Join(dir, "clair-de-lune.mp3"),
	})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	matches, err := Resolve(ctx, strconv.FormatInt(added.ID, 10))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match by ID, got %d", len(matches))
	}
	if matches[0].Title != "Clair de Lune" {
		t.Errorf("resolved title = %q, want 'Clair de Lune'", matches[0].Title)
	}
}

func TestResolve_ByTitle(t *testing.T) {
	dir := resetLibrary(t)
	ctx := context.Background()

	for _, title := range []string{"Blue Monday", "Blue in Green", "Kind of Blue"} {
		_, _, err := Add(ctx, Track{Title: title, FilePath: filepath.Join(dir, title+".mp3")})
		if err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}

	// Substring match, case-insensitive.
	matches, err := Resolve(ctx, "blue")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(matches) != 3 {
		t.Errorf("expected 3 matches for 'blue', got %d", len(matches))
	}

	matches, err = Resolve(ctx, "monday")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match for 'monday', got %d", len(matches))
	}
	if matches[0].Title != "Blue Monday" {
		t.Errorf("resolved title = %q, want 'Blue Monday'", matches[0].Title)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	resetLibrary(t)
	ctx := context.Background()

	// Unknown ID.
	matches, err := Resolve(ctx, "9999")
	if err != nil {
		t.Fatalf("Resolve by unknown ID error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected 0 matches for unknown ID, got %d", len(matches))
	}

	// Unknown title.
	matches, err = Resolve(ctx, "does not exist")
	if err != nil {
		t.Fatalf("Resolve by unknown title error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected 0 matches for unknown title, got %d", len(matches))
	}
}

func TestResolve_EmptyIdentifier(t *testing.T) {
	resetLibrary(t)
	ctx := context.Background()

	_, err := Resolve(ctx, "   ")
	if err == nil {
		t.Error("expected error for blank identifier")
	}
}

func TestByID_Absent(t *testing.T) {
	resetLibrary(t)
	ctx := context.Background()

	track, err := ByID(ctx, 12345)
	if err != nil {
		t.Fatalf("ByID error: %v", err)
	}
	if track != nil {
		t.Errorf("expected nil for absent ID, got %+v", track)
	}
}

func TestIsDigits(t *testing.T) {
	for _, s := range []string{"1", "42", "007"} {
		if !isDigits(s) {
			t.Errorf("isDigits(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "12a", "-1", "3.5", "abba"} {
		if isDigits(s) {
			t.Errorf("isDigits(%q) = true, want false", s)
		}
	}
}

func TestInitLibrarySchema_Idempotent(t *testing.T) {
	dir := resetLibrary(t)
	ctx := context.Background()

	_, _, err := Add(ctx, Track{Title: "First", FilePath: filepath.Join(dir, "first.mp3")})
	if err != nil {
		t.Fatalf("first add error: %v", err)
	}

	// Reset singleton but keep the same download dir (same DB file).
	libraryDB = nil
	libraryErr = nil
	libraryOnce = sync.Once{}

	_, _, err = Add(ctx, Track{Title: "Second", FilePath: filepath.Join(dir, "second.mp3")})
	if err != nil {
		t.Fatalf("second add after re-open error: %v", err)
	}

	_, total, err := List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 total after re-open, got %d", total)
	}
}
