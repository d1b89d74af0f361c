// =============================================================================
// Jira to Gantt Converter - Output File Management
// =============================================================================
//
// This module writes output files atomically. Chart data and legend files
// are first written to a uniquely named temporary file in the destination
// directory, then renamed into place once the content is complete.
//
// ATOMICITY:
//   - A failure mid-write never leaves a truncated output file behind
//   - An existing output file is replaced only after the new content is
//     fully on disk
//   - The temporary file lives next to the target so the final rename
//     stays on one filesystem
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// ATOMIC FILE
// =============================================================================

// AtomicFile is a write-only file that reaches its target path only on
// Commit. Until then all writes go to a temporary file in the target's
// directory.
type AtomicFile struct {
	target string
	tmp    *os.File
	done   bool
}

// CreateAtomic opens an AtomicFile for the given target path.
//
// PARAMETERS:
//   - target: The path the file will have after Commit.
//
// RETURNS:
//   - The open AtomicFile. The caller must finish with Commit or Abort.
//   - An error if the temporary file cannot be created.
func CreateAtomic(target string) (*AtomicFile, error) {
	dir := filepath.Dir(target)
	name := fmt.Sprintf(".%s.%s.tmp", filepath.Base(target), uuid.New().String())

	tmp, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file for %s: %w", target, err)
	}

	return &AtomicFile{target: target, tmp: tmp}, nil
}

// Write implements io.Writer.
func (f *AtomicFile) Write(p []byte) (int, error) {
	if f.done {
		return 0, fmt.Errorf("write to closed atomic file %s", f.target)
	}
	return f.tmp.Write(p)
}

// Commit flushes the content to disk and renames the temporary file onto
// the target path. On any error the temporary file is removed and the
// target is left untouched.
func (f *AtomicFile) Commit() error {
	if f.done {
		return fmt.Errorf("atomic file %s already closed", f.target)
	}
	f.done = true

	if err := f.tmp.Sync(); err != nil {
		f.tmp.Close()
		os.Remove(f.tmp.Name())
		return fmt.Errorf("failed to flush %s: %w", f.target, err)
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return fmt.Errorf("failed to close %s: %w", f.target, err)
	}
	if err := os.Rename(f.tmp.Name(), f.target); err != nil {
		os.Remove(f.tmp.Name())
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	return nil
}

// Abort discards the temporary file. Calling Abort after Commit or a
// second Abort is a no-op.
func (f *AtomicFile) Abort() error {
	if f.done {
		return nil
	}
	f.done = true

	f.tmp.Close()
	if err := os.Remove(f.tmp.Name()); err != nil {
		return fmt.Errorf("failed to remove temporary file: %w", err)
	}
	return nil
}

// =============================================================================
// CONVENIENCE WRAPPER
// =============================================================================

// WriteFileAtomic writes a whole file through a callback.
//
// PARAMETERS:
//   - target: The output path.
//   - write: Receives the open file and produces its content.
//
// RETURNS:
//   - An error if the callback fails or the file cannot be placed. The
//     target is created or replaced only when nothing failed.
func WriteFileAtomic(target string, write func(w io.Writer) error) error {
	f, err := CreateAtomic(target)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Abort()
		return err
	}
	return f.Commit()
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
