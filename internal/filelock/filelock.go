// Package filelock provides the output sink for a treedump run: an exclusive
// advisory lock on the output path and a streaming atomic writer, so a run
// either replaces the output file completely or leaves it untouched.
package filelock

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrOutputLocked is returned when another process holds the output lock.
var ErrOutputLocked = errors.New("output file is locked by another run")

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held by another process.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock. The lock file stays on disk so every run locks
// the same inode.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// LockPath returns the lock file used for an output path.
// Example: writing to "output.txt" uses lock file "output.txt.lock"
func LockPath(path string) string {
	return path + ".lock"
}

// AtomicFile is a buffered writer that stages content in a temporary file next
// to the target and renames it into place on Commit.
//
// Usage:
//
//	out, err := filelock.Create("dump.txt")
//	if err != nil {
//	    return err
//	}
//	defer out.Close()
//	// ... write to out ...
//	return out.Commit()
//
// Close after a successful Commit is a no-op; Close without Commit discards
// the staged content and leaves any previous file at path unchanged.
type AtomicFile struct {
	path     string
	tempPath string
	file     *os.File
	buf      *bufio.Writer
	lock     *FileLock
	closed   bool
}

// Create acquires the output lock for path without blocking and opens a
// temporary file in the same directory. The parent directory is created if
// it doesn't exist. Returns ErrOutputLocked if another run owns the output.
func Create(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := NewFileLock(LockPath(path))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%s: %w", path, ErrOutputLocked)
	}

	// Same directory as the target keeps the rename on one filesystem.
	// The ".tmp" suffix keeps the staging file out of any extension allow-list.
	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	return &AtomicFile{
		path:     path,
		tempPath: tempFile.Name(),
		file:     tempFile,
		buf:      bufio.NewWriter(tempFile),
		lock:     lock,
	}, nil
}

// Path returns the final output path.
func (a *AtomicFile) Path() string {
	return a.path
}

// TempPath returns the staging file path.
func (a *AtomicFile) TempPath() string {
	return a.tempPath
}

// Write appends p to the staged content.
func (a *AtomicFile) Write(p []byte) (int, error) {
	if a.closed {
		return 0, os.ErrClosed
	}
	return a.buf.Write(p)
}

// Commit flushes and syncs the staged content, then renames it over the
// target path and releases the lock.
func (a *AtomicFile) Commit() error {
	if a.closed {
		return os.ErrClosed
	}

	if err := a.buf.Flush(); err != nil {
		a.Close()
		return fmt.Errorf("failed to flush temp file: %w", err)
	}
	if err := a.file.Sync(); err != nil {
		a.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := a.file.Close(); err != nil {
		a.Close()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(a.tempPath, 0644); err != nil {
		a.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(a.tempPath, a.path); err != nil {
		a.Close()
		return fmt.Errorf("failed to rename temp file to %s: %w", a.path, err)
	}

	a.closed = true
	return a.lock.Unlock()
}

// Close discards uncommitted content and releases the lock. It is safe to
// call more than once.
func (a *AtomicFile) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	a.file.Close()
	if err := os.Remove(a.tempPath); err != nil && !os.IsNotExist(err) {
		a.lock.Unlock()
		return fmt.Errorf("failed to remove temp file %s: %w", a.tempPath, err)
	}
	return a.lock.Unlock()
}
