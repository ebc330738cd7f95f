package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	_ "modernc.org/sqlite"
)

// Track is a single entry in the music library.
type Track struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Artist        string  `json:"artist,omitempty"`
	FilePath      string  `json:"file_path"`
	Duration      float64 `json:"duration,omitempty"` // seconds
	OriginalQuery string  `json:"original_query,omitempty"`
	YouTubeURL    string  `json:"youtube_url,omitempty"`
	DownloadedAt  string  `json:"downloaded_at"`
}

// ListFilter narrows List results. Zero value lists everything.
type ListFilter struct {
	Limit  int    // defaults to 20, capped at 100
	Artist string // case-insensitive substring on artist
	Search string // case-insensitive substring on title or artist
}

var (
	libraryDB   *sql.DB
	libraryOnce sync.Once
	libraryErr  error
)

// openLibraryDB opens (or creates) the SQLite library database.
// It lives inside the download path so the library travels with the files.
func openLibraryDB() (*sql.DB, error) {
	libraryOnce.Do(func() {
		dir := engine.Cfg.DownloadPath
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0750); err != nil {
			libraryErr = fmt.Errorf("library: mkdir %s: %w", dir, err)
			return
		}
		dbPath := filepath.Join(dir, "music_library.db")
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			libraryErr = fmt.Errorf("library: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initLibrarySchema(db); err != nil {
			libraryErr = fmt.Errorf("library: init schema: %w", err)
			return
		}
		libraryDB = db
	})
	return libraryDB, libraryErr
}

// initLibrarySchema creates the tracks table if it doesn't exist.
func initLibrarySchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS tracks (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		title          TEXT NOT NULL,
		artist         TEXT,
		file_path      TEXT NOT NULL UNIQUE,
		duration       REAL,
		original_query TEXT,
		youtube_url    TEXT,
		downloaded_at  TEXT NOT NULL
	)`)
	return err
}

// Add records a downloaded track. Idempotent on file_path: re-downloading
// the same file returns the existing row with added=false.
func Add(_ context.Context, t Track) (*Track, bool, error) {
	if t.Title == "" || t.FilePath == "" {
		return nil, false, errors.New("library: title and file_path are required")
	}

	db, err := openLibraryDB()
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.Exec(
		`INSERT INTO tracks (title, artist, file_path, duration, original_query, youtube_url, downloaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(file_path) DO NOTHING`,
		t.Title, t.Artist, t.FilePath, t.Duration, t.OriginalQuery, t.YouTubeURL, now,
	)
	if err != nil {
		return nil, false, fmt.Errorf("library: insert: %w", err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		existing, err := byFilePath(db, t.FilePath)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	id, _ := res.LastInsertId()
	t.ID = id
	t.DownloadedAt = now
	return &t, true, nil
}

// List returns tracks newest first plus the total count matching the filter.
func List(_ context.Context, f ListFilter) ([]Track, int, error) {
	db, err := openLibraryDB()
	if err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	where, args := listWhere(f)

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM tracks`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("library: count: %w", err)
	}

	rows, err := db.Query(
		`SELECT id, title, artist, file_path, duration, original_query, youtube_url, downloaded_at
		 FROM tracks`+where+` ORDER BY downloaded_at DESC, id DESC LIMIT ?`,
		append(args, limit)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("library: query: %w", err)
	}
	defer rows.Close()

	tracks, err := scanTracks(rows)
	if err != nil {
		return nil, 0, err
	}
	return tracks, total, nil
}

// listWhere builds the WHERE clause for a filter.
func listWhere(f ListFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Artist != "" {
		conds = append(conds, `LOWER(artist) LIKE '%' || LOWER(?) || '%'`)
		args = append(args, f.Artist)
	}
	if f.Search != "" {
		conds = append(conds, `(LOWER(title) LIKE '%' || LOWER(?) || '%' OR LOWER(artist) LIKE '%' || LOWER(?) || '%')`)
		args = append(args, f.Search, f.Search)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Resolve finds tracks for a playback identifier: an all-digits identifier
// is a library ID lookup, anything else a title substring match.
func Resolve(ctx context.Context, identifier string) ([]Track, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, errors.New("library: identifier is required")
	}

	if isDigits(identifier) {
		var id int64
		fmt.Sscanf(identifier, "%d", &id)
		t, err := ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, nil
		}
		return []Track{*t}, nil
	}

	db, err := openLibraryDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(
		`SELECT id, title, artist, file_path, duration, original_query, youtube_url, downloaded_at
		 FROM tracks WHERE LOWER(title) LIKE '%' || LOWER(?) || '%' ORDER BY downloaded_at DESC, id DESC`,
		identifier,
	)
	if err != nil {
		return nil, fmt.Errorf("library: resolve: %w", err)
	}
	defer rows.Close()
	return scanTracks(rows)
}

// ByID fetches one track, nil if absent.
func ByID(_ context.Context, id int64) (*Track, error) {
	db, err := openLibraryDB()
	if err != nil {
		return nil, err
	}
	row := db.QueryRow(
		`SELECT id, title, artist, file_path, duration, original_query, youtube_url, downloaded_at
		 FROM tracks WHERE id = ?`, id,
	)
	t, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("library: by id: %w", err)
	}
	return t, nil
}

func byFilePath(db *sql.DB, path string) (*Track, error) {
	row := db.QueryRow(
		`SELECT id, title, artist, file_path, duration, original_query, youtube_url, downloaded_at
		 FROM tracks WHERE file_path = ?`, path,
	)
	t, err := scanTrack(row)
	if err != nil {
		return nil, fmt.Errorf("library: by file path: %w", err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (*Track, error) {
	var t Track
	var artist, query, url sql.NullString
	var duration sql.NullFloat64
	if err := row.Scan(&t.ID, &t.Title, &artist, &t.FilePath,
		&duration, &query, &url, &t.DownloadedAt); err != nil {
		return nil, err
	}
	t.Artist = artist.String
	t.Duration = duration.Float64
	t.OriginalQuery = query.String
	t.YouTubeURL = url.String
	return &t, nil
}

func scanTracks(rows *sql.Rows) ([]Track, error) {
	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			continue
		}
		tracks = append(tracks, *t)
	}
	if tracks == nil {
		tracks = []Track{}
	}
	return tracks, rows.Err()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
