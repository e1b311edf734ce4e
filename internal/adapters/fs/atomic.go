package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces path with data so that readers observe either the
// previous content or the complete new content, never a mix.
//
// data is written to tmpPath, flushed to stable storage and renamed onto path.
// tmpPath must live in the same directory as path: rename is only atomic within
// one file system. A failed write may leave tmpPath behind; the next call
// truncates it.
func WriteFileAtomic(tmpPath, path string, data []byte, perm os.FileMode) error {
	if filepath.Dir(filepath.Clean(tmpPath)) != filepath.Dir(filepath.Clean(path)) {
		return fmt.Errorf("temp file %s is not a sibling of %s", tmpPath, path)
	}

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	return syncDir(filepath.Dir(path))
}

// tempPath returns path with its extension replaced by ".tmp".
func tempPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".tmp"
}
