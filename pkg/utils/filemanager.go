// =============================================================================
// Bulk Annotation KV - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the CLI:
//   - Directory management
//   - Output file naming with placeholder expansion
//   - Archival of processed input files
//
// ARCHIVAL STRATEGY:
//   Input files are moved into the archive directory after successful
//   processing, optionally under date-based subdirectories
//   (archive/2026/08/27/file.csv). Failed files stay where they are.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// OutputFileName expands an output name format for one input file.
//
// PLACEHOLDERS:
//   {uuid}      - a random UUID
//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//   {name}      - base holds the input file name; its extension is dropped
func OutputFileName(format, base string) string {
	name := strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))

	out := format
	out = strings.ReplaceAll(out, "{uuid}", uuid.New().String())
	out = strings.ReplaceAll(out, "{timestamp}", time.Now().Format("20060102_150405"))
	out = strings.ReplaceAll(out, "{name}", name)
	return out
}

// ArchiveFile moves a processed file into the archive directory and returns
// the archived path. With dateSubdirs, files land under year/month/day
// subdirectories.
func ArchiveFile(path, archiveDir string, dateSubdirs bool) (string, error) {
	if dateSubdirs {
		now := time.Now()
		archiveDir = filepath.Join(archiveDir,
			fmt.Sprintf("%04d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()))
	}
	if err := EnsureDir(archiveDir); err != nil {
		return "", err
	}

	dest := filepath.Join(archiveDir, filepath.Base(path))
	if err := moveFile(path, dest); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return dest, nil
}

// moveFile renames a file, falling back to copy-and-remove when source and
// destination are on different filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
