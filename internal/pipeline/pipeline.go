package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/assistkit/sanibundle/internal/archive"
	"github.com/assistkit/sanibundle/internal/config"
	"github.com/assistkit/sanibundle/internal/manifest"
	"github.com/assistkit/sanibundle/internal/pathfilter"
	"github.com/assistkit/sanibundle/internal/redact"
	"github.com/assistkit/sanibundle/internal/staging"
)

// Stage identifies where the pipeline currently is.
type Stage string

const (
	StageIdle      Stage = "idle"
	StageStaging   Stage = "staging"
	StageRedacting Stage = "redacting"
	StageArchiving Stage = "archiving"
	StageDone      Stage = "done"
	StageFailed    Stage = "failed"
)

// Result summarizes a successful run.
type Result struct {
	ArchivePath   string `json:"archivePath"`
	FilesBundled  int    `json:"filesBundled"`
	FilesSkipped  int    `json:"filesSkipped"`
	RedactedLines int    `json:"redactedLines"`
}

// Run executes one bundle pipeline. The progress callback, if non-nil,
// fires on every stage transition. Whatever happens, the scratch
// directory is gone by the time Run returns.
func Run(cfg config.Config, version string, progress func(Stage)) (Result, error) {
	report := func(s Stage) {
		if progress != nil {
			progress(s)
		}
	}
	report(StageIdle)

	fail := func(err error) (Result, error) {
		report(StageFailed)
		return Result{}, err
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return fail(fmt.Errorf("resolving project root %s: %w", cfg.Root, err))
	}
	if !info.IsDir() {
		return fail(fmt.Errorf("project root %s is not a directory", cfg.Root))
	}

	scratch, err := staging.NewScratch()
	if err != nil {
		return fail(err)
	}
	defer os.RemoveAll(scratch)

	report(StageStaging)
	// A prior artifact at the output path must never be swept into the
	// next bundle.
	if rel, relErr := filepath.Rel(cfg.Root, cfg.Output); relErr == nil && !strings.HasPrefix(rel, "..") {
		cfg.Exclude = append(cfg.Exclude, filepath.ToSlash(rel))
	}
	filter := pathfilter.New(cfg.Exclude, cfg.Match)
	stats, err := staging.Copy(cfg.Root, scratch, filter)
	if err != nil {
		return fail(err)
	}

	report(StageRedacting)
	rules, err := redact.DefaultRules(cfg.SensitiveKeys)
	if err != nil {
		return fail(err)
	}
	counts := make(map[string]int, len(rules))
	total := 0
	for _, rule := range rules {
		n, err := rule.Apply(scratch)
		if err != nil {
			return fail(fmt.Errorf("redaction rule %s: %w", rule.Name(), err))
		}
		counts[rule.Name()] = n
		total += n
	}

	if cfg.Manifest {
		err := manifest.Write(scratch, manifest.Info{
			Tool:      "sanibundle",
			Version:   version,
			CreatedAt: time.Now().UTC(),
			Redacted:  counts,
		})
		if err != nil {
			return fail(err)
		}
	}

	report(StageArchiving)
	if err := archive.Create(scratch, cfg.Output); err != nil {
		return fail(err)
	}

	dest, err := filepath.Abs(cfg.Output)
	if err != nil {
		dest = cfg.Output
	}

	report(StageDone)
	return Result{
		ArchivePath:   dest,
		FilesBundled:  stats.Copied,
		FilesSkipped:  stats.Skipped,
		RedactedLines: total,
	}, nil
}
