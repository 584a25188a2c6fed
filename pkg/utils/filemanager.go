// =============================================================================
// Taplist Builder - File Manager Utility
// =============================================================================
//
// This module provides the file helpers the build uses:
//   - Reading asset files (templates, taplist) whole, as text
//   - Directory management for the output location
//   - Copying the static asset tree next to the output page
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager reads assets from a base directory.
type FileManager struct {
	// AssetsDir is the directory relative asset names are resolved against.
	AssetsDir string
}

// NewFileManager creates a new FileManager rooted at assetsDir.
func NewFileManager(assetsDir string) *FileManager {
	return &FileManager{AssetsDir: assetsDir}
}

// Path resolves an asset name. Absolute names are returned unchanged.
func (fm *FileManager) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fm.AssetsDir, name)
}

// ReadText reads an asset in full.
//
// RETURNS:
//   - The file contents.
//   - An error wrapping the fs error (errors.Is(err, fs.ErrNotExist) holds
//     for a missing file).
func (fm *FileManager) ReadText(name string) (string, error) {
	path := fm.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read asset: %w", err)
	}
	return string(data), nil
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureParentDir creates the directory that will contain path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// STATIC ASSETS
// =============================================================================

// CopyTree copies every regular file under src into dst, keeping the
// relative layout. Existing files in dst are overwritten.
//
// PARAMETERS:
//   - src: The directory to copy from. It must exist.
//   - dst: The directory to copy into. Created if missing.
//
// RETURNS:
//   - The number of files copied.
//   - An error if any file cannot be copied.
func CopyTree(src, dst string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("failed to read static directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("static path %s is not a directory", src)
	}

	copied := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if err := copyFile(path, target); err != nil {
			return fmt.Errorf("failed to copy %s: %w", rel, err)
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, err
	}

	return copied, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
