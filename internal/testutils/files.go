package testutils

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// CopyFile copies a file from source to destination.
func CopyFile(t *testing.T, src, dst string) error {
	t.Helper()

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0600)
}

// CopySymlink copies a symlink from source to destination.
func CopySymlink(t *testing.T, src, dst string) error {
	t.Helper()

	lnk, err := os.Readlink(src)
	if err != nil {
		return err
	}

	err = os.Symlink(lnk, dst)
	if err != nil {
		return err
	}
	return nil
}

// CopyDir copies the contents of a directory to another directory.
func CopyDir(t *testing.T, srcDir, dstDir string) error {
	t.Helper()
	return filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dstDir, relPath)
		if info.IsDir() {
			return os.MkdirAll(dstPath, 0700)
		}
		if info.Mode()&fs.ModeSymlink > 0 {
			return CopySymlink(t, path, dstPath)
		}
		return CopyFile(t, path, dstPath)
	})
}
