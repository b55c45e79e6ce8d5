// Package archive moves finished output directories out of the way.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveOutput moves dir to <parent>/archive/<name>-<timestamp> and
// returns the new location.
func ArchiveOutput(dir string) (string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("output directory does not exist: %s", dir)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat output directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("output path is not a directory: %s", dir)
	}

	clean := filepath.Clean(dir)
	archiveDir := filepath.Join(filepath.Dir(clean), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := filepath.Base(clean)
	archivePath := filepath.Join(archiveDir, name+"-"+time.Now().Format("20060102-150405"))

	// Same-second runs get a finer timestamp
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, name+"-"+time.Now().Format("20060102-150405.000000"))
	}

	if err := os.Rename(clean, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive output directory: %w", err)
	}

	return archivePath, nil
}
