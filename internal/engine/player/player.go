// Package player runs local audio playback as a detached subprocess.
// One session at a time; starting a new track stops the previous one.
package player

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anatolykoptev/go_jukebox/internal/engine"
	"github.com/google/uuid"
)

var supportedExts = map[string]bool{".mp3": true, ".ogg": true, ".wav": true}

// NowPlaying describes an active playback session.
type NowPlaying struct {
	SessionID string
	TrackID   int64
	Title     string
	Artist    string
	FilePath  string
	StartedAt time.Time
}

type session struct {
	info NowPlaying
	cmd  *exec.Cmd
	done chan struct{} // closed once the subprocess is reaped
}

var (
	mu      sync.Mutex
	current *session
)

// SupportedFormat reports whether the player handles the file's extension.
func SupportedFormat(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

// Play stops any active session and starts the playback binary on the given
// file. Playback is detached: the subprocess keeps running after Play
// returns, and a reaper goroutine clears the session when it exits.
func Play(trackID int64, title, artist, path string) (*NowPlaying, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExts[ext] {
		return nil, fmt.Errorf("unsupported audio format %s", ext)
	}

	bin := engine.Cfg.PlayerBin
	if bin == "" {
		bin = "ffplay"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("audio player %q not found (install ffmpeg): %w", bin, err)
	}

	Stop()

	cmd := exec.Command(bin, "-nodisp", "-autoexit", "-loglevel", "error", path)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start player: %w", err)
	}

	s := &session{
		info: NowPlaying{
			SessionID: uuid.NewString(),
			TrackID:   trackID,
			Title:     title,
			Artist:    artist,
			FilePath:  path,
			StartedAt: time.Now(),
		},
		cmd:  cmd,
		done: make(chan struct{}),
	}

	mu.Lock()
	current = s
	mu.Unlock()

	go reap(s)

	slog.Info("playback started",
		slog.String("session", s.info.SessionID),
		slog.String("title", title),
		slog.String("file", path),
	)
	info := s.info
	return &info, nil
}

// reap waits for the subprocess and clears the session if it is still
// the active one (natural end of track).
func reap(s *session) {
	err := s.cmd.Wait()
	mu.Lock()
	if current == s {
		current = nil
	}
	mu.Unlock()
	close(s.done)

	elapsed := time.Since(s.info.StartedAt)
	if err != nil && !wasKilled(err) {
		slog.Warn("player exited with error", slog.String("session", s.info.SessionID), slog.Any("error", err))
		return
	}
	slog.Debug("playback finished", slog.String("session", s.info.SessionID), slog.Duration("elapsed", elapsed))
}

func wasKilled(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && !exitErr.Exited()
}

// Stop kills the active session, if any, and reports what was playing.
func Stop() (NowPlaying, bool) {
	mu.Lock()
	s := current
	current = nil
	mu.Unlock()

	if s == nil {
		return NowPlaying{}, false
	}

	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	<-s.done

	slog.Info("playback stopped", slog.String("session", s.info.SessionID), slog.String("title", s.info.Title))
	return s.info, true
}

// Status returns the active session, if any.
func Status() (NowPlaying, bool) {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		return NowPlaying{}, false
	}
	return current.info, true
}
