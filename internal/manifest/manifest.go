package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Filename is the manifest's name inside the bundle.
const Filename = "bundle_manifest.yaml"

// Info is the run metadata recorded alongside the file inventory.
type Info struct {
	Tool      string         `yaml:"tool"`
	Version   string         `yaml:"version"`
	CreatedAt time.Time      `yaml:"createdAt"`
	Redacted  map[string]int `yaml:"redactedLines,omitempty"`
}

// Entry describes one staged file.
type Entry struct {
	Path string `yaml:"path"`
	Size int64  `yaml:"size"`
}

type document struct {
	Info  `yaml:",inline"`
	Files []Entry `yaml:"files"`
}

// Write inventories every file under stagedRoot and writes the manifest
// at the root of the staged tree, where the archiver picks it up.
func Write(stagedRoot string, info Info) error {
	files, err := collect(stagedRoot)
	if err != nil {
		return fmt.Errorf("inventorying staged tree: %w", err)
	}

	data, err := yaml.Marshal(document{Info: info, Files: files})
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(stagedRoot, Filename), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

func collect(root string) ([]Entry, error) {
	var files []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, Entry{Path: filepath.ToSlash(rel), Size: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
