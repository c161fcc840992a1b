// Package staging manages per-export working directories under the
// configured staging root. Each export renders its frame batches into an
// isolated session directory that is locked while the export runs and
// reclaimed afterwards.
package staging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const (
	sessionPrefix = "export-"
	lockFileName  = ".lock"
	framesDirName = "frames"
)

// Session is an exclusive working directory for one export run.
type Session struct {
	ID   string
	Root string

	lock *flock.Flock
}

// Begin creates a locked session directory under stagingDir.
func Begin(stagingDir string) (*Session, error) {
	id := uuid.NewString()
	root := filepath.Join(stagingDir, sessionPrefix+id)
	if err := os.MkdirAll(filepath.Join(root, framesDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	lock := flock.New(filepath.Join(root, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("session directory %s is already locked", root)
	}

	return &Session{ID: id, Root: root, lock: lock}, nil
}

// Resume reattaches to an existing session directory, locking it again.
func Resume(stagingDir, id string) (*Session, error) {
	root := filepath.Join(stagingDir, sessionPrefix+id)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resume session: %s is not a directory", root)
	}
	if err := os.MkdirAll(filepath.Join(root, framesDirName), 0o755); err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}

	lock := flock.New(filepath.Join(root, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("session %s is locked by another export", id)
	}

	return &Session{ID: id, Root: root, lock: lock}, nil
}

// FramesDir returns the directory that frame batches are rendered into.
func (s *Session) FramesDir() string {
	return filepath.Join(s.Root, framesDirName)
}

// FramePattern returns the printf pattern for staged frame files.
func (s *Session) FramePattern() string {
	return filepath.Join(s.FramesDir(), "frame_%06d.png")
}

// FramePath returns the staged path of one frame by index.
func (s *Session) FramePath(index int) string {
	return fmt.Sprintf(s.FramePattern(), index)
}

// ClearFrames removes all staged frames while keeping the session alive.
func (s *Session) ClearFrames() error {
	dir := s.FramesDir()
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear frames: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("clear frames: %w", err)
	}
	return nil
}

// Close releases the session lock without removing the directory. The
// directory survives for resume and is eventually reclaimed by CleanStale.
func (s *Session) Close() error {
	if s.lock == nil {
		return nil
	}
	err := s.lock.Unlock()
	s.lock = nil
	return err
}

// Remove releases the lock and deletes the session directory.
func (s *Session) Remove() error {
	if err := s.Close(); err != nil {
		return err
	}
	if err := os.RemoveAll(s.Root); err != nil {
		return fmt.Errorf("remove session directory: %w", err)
	}
	return nil
}
