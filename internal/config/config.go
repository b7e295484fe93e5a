package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/assistkit/sanibundle/internal/pathfilter"
	"github.com/assistkit/sanibundle/internal/redact"
)

// ArtifactName is the deterministic name of the bundle at the project root.
const ArtifactName = "sanitized_bundle.zip"

// Config carries everything one pipeline run needs.
type Config struct {
	Root          string               `json:"root"`
	Output        string               `json:"output"`
	Match         pathfilter.MatchMode `json:"match"`
	Exclude       []string             `json:"exclude"`
	SensitiveKeys []string             `json:"sensitiveKeys"`
	Manifest      bool                 `json:"manifest"`
	Format        string               `json:"format"`
}

// Default returns the compiled-in configuration: the built-in exclusion
// set (caches, VCS metadata, upload and log directories, database
// files, binary media, OS metadata) and the canonical sensitive-key
// patterns, with substring matching for compatibility.
func Default() Config {
	return Config{
		Match: pathfilter.MatchSubstring,
		Exclude: []string{
			"__pycache__",
			".pyc",
			".pytest_cache",
			".mypy_cache",
			".git",
			".venv",
			"venv",
			"node_modules",
			"uploads",
			"logs",
			".log",
			"backups",
			".sqlite3",
			".db",
			".mp3",
			".ogg",
			".oga",
			".wav",
			".mp4",
			".jpg",
			".jpeg",
			".png",
			".pdf",
			".docx",
			".DS_Store",
			"Thumbs.db",
		},
		SensitiveKeys: redact.DefaultSensitiveKeys(),
		Manifest:      true,
		Format:        "text",
	}
}

// Load builds the effective config: defaults <- env <- flag overrides.
// Extra exclusion patterns extend the built-in set, never replace it.
func Load(overrides map[string]string, extraExclude []string) (Config, error) {
	cfg := Default()
	mergeEnv(&cfg)
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	cfg.Exclude = append(cfg.Exclude, extraExclude...)

	if cfg.Root == "" {
		root, err := DetectRoot()
		if err != nil {
			return Config{}, err
		}
		cfg.Root = root
	}
	if cfg.Output == "" {
		cfg.Output = filepath.Join(cfg.Root, ArtifactName)
	}
	return cfg, nil
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("SANIBUNDLE_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv("SANIBUNDLE_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("SANIBUNDLE_MATCH"); v != "" {
		if mode, ok := pathfilter.ParseMode(v); ok {
			cfg.Match = mode
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	if overrides == nil {
		return nil
	}
	if v, ok := overrides["root"]; ok && v != "" {
		cfg.Root = v
	}
	if v, ok := overrides["out"]; ok && v != "" {
		cfg.Output = v
	}
	if v, ok := overrides["match"]; ok && v != "" {
		mode, valid := pathfilter.ParseMode(v)
		if !valid {
			return fmt.Errorf("unknown match mode: %s (want substring, glob, or segment)", v)
		}
		cfg.Match = mode
	}
	if v, ok := overrides["format"]; ok && v != "" {
		if v != "text" && v != "json" {
			return fmt.Errorf("unknown output format: %s (want text or json)", v)
		}
		cfg.Format = v
	}
	if v, ok := overrides["manifest"]; ok {
		cfg.Manifest = v != "false"
	}
	return nil
}

// DetectRoot resolves the project root as the parent of the directory
// holding the running executable, falling back to the working directory
// when the executable path cannot be determined.
func DetectRoot() (string, error) {
	exe, err := os.Executable()
	if err == nil {
		if resolved, rErr := filepath.EvalSymlinks(exe); rErr == nil {
			exe = resolved
		}
		return filepath.Dir(filepath.Dir(exe)), nil
	}
	wd, wdErr := os.Getwd()
	if wdErr != nil {
		return "", fmt.Errorf("resolving project root: %w", wdErr)
	}
	return wd, nil
}
