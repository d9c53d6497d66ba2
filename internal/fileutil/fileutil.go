package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// CopyFileVerified copies src to dst and checks that the SHA-256 of the
// bytes read matches the bytes written and that the length equals the
// source size. dst is removed when either check fails. The source mode and
// modification time carry over, so library files keep their capture-era
// mtime.
func CopyFileVerified(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	read, wrote := sha256.New(), sha256.New()
	n, copyErr := io.Copy(io.MultiWriter(out, wrote), io.TeeReader(in, read))
	if closeErr := out.Close(); copyErr == nil {
		copyErr = closeErr
	}
	switch {
	case copyErr != nil:
		_ = os.Remove(dst)
		return copyErr
	case n != info.Size():
		_ = os.Remove(dst)
		return fmt.Errorf("copy of %s stopped at %d of %d bytes", src, n, info.Size())
	case !bytes.Equal(read.Sum(nil), wrote.Sum(nil)):
		_ = os.Remove(dst)
		return fmt.Errorf("copy of %s does not match its source", src)
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// MoveFile renames src to dst, falling back to a verified copy followed by
// removal of src when the two paths are on different devices. A failed
// removal after a successful copy is reported through ErrSourceRetained.
func MoveFile(src, dst string) error {
	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(renameErr, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return renameErr
	}
	if err := CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("cross-device copy: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("%w: %w", ErrSourceRetained, err)
	}
	return nil
}

// ErrSourceRetained marks a move whose copy landed but whose source could
// not be removed.
var ErrSourceRetained = errors.New("source retained after cross-device move")

// Exists reports whether path names an existing file or directory.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// CountFiles returns the number of regular files directly inside dir. A
// missing directory counts as empty.
func CountFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			count++
		}
	}
	return count, nil
}

// OS performs file operations against the local filesystem.
type OS struct{}

// MkdirAll creates dir and its parents.
func (OS) MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// Move moves src to dst.
func (OS) Move(src, dst string) error {
	return MoveFile(src, dst)
}

// Copy copies src to dst with verification.
func (OS) Copy(src, dst string) error {
	return CopyFileVerified(src, dst)
}

// Exists reports whether path exists.
func (OS) Exists(path string) (bool, error) {
	return Exists(path)
}

// CountFiles counts regular files in dir.
func (OS) CountFiles(dir string) (int, error) {
	return CountFiles(dir)
}

// Walk lists regular files under root in lexical order. Subdirectories are
// descended only when recursive is set.
func (OS) Walk(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}
	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
