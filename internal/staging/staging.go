package staging

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/assistkit/sanibundle/internal/pathfilter"
)

// Stats summarizes one staging pass.
type Stats struct {
	Copied  int `json:"copied"`
	Skipped int `json:"skipped"`
}

// NewScratch creates a unique scratch directory for one pipeline run.
func NewScratch() (string, error) {
	dir, err := os.MkdirTemp("", "sanibundle-*")
	if err != nil {
		return "", fmt.Errorf("creating scratch directory: %w", err)
	}
	return dir, nil
}

// Copy walks srcRoot and reproduces every included regular file under
// dstRoot with its relative path preserved. Files the filter excludes
// are never touched; files that fail to copy are skipped and counted.
// Only a failure to traverse srcRoot itself is an error.
func Copy(srcRoot, dstRoot string, filter *pathfilter.Set) (Stats, error) {
	var stats Stats

	err := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == srcRoot {
				return fmt.Errorf("walking project root: %w", err)
			}
			// Unreadable subtree: skip it and keep going.
			stats.Skipped++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			// Symlinks and other specials are not staged.
			return nil
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			stats.Skipped++
			return nil
		}
		if filter.Excluded(rel) {
			return nil
		}

		if err := copyFile(path, filepath.Join(dstRoot, rel)); err != nil {
			stats.Skipped++
			return nil
		}
		stats.Copied++
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)
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
