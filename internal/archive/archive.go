// Package archive keeps timestamped copies of dictionary files.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Dir is the name of the archive directory next to the dictionary file
const Dir = "archive"

// Dictionary copies the dictionary at path into the archive directory next
// to it, named after the file and the current time. With reset, the file is
// moved instead, so the next run starts from an empty dictionary.
func Dictionary(path string, reset bool) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("dictionary does not exist: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	archiveDir := filepath.Join(filepath.Dir(path), Dir)
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := archiveName(archiveDir, path, "20060102-150405")
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = archiveName(archiveDir, path, "20060102-150405.000000")
	}

	if reset {
		if err := os.Rename(path, archivePath); err != nil {
			return "", fmt.Errorf("failed to archive dictionary: %w", err)
		}
		return archivePath, nil
	}

	if err := copyFile(path, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive dictionary: %w", err)
	}
	return archivePath, nil
}

// archiveName turns .global-dictionary.json into global-dictionary-<timestamp>.json
func archiveName(archiveDir, path, layout string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimPrefix(strings.TrimSuffix(base, ext), ".")
	return filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, time.Now().Format(layout), ext))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
