package pathfilter

import (
	"path/filepath"
	"strings"
)

// MatchMode selects how an exclusion pattern is compared against a path.
type MatchMode string

const (
	// MatchSubstring excludes a path when the pattern occurs anywhere in
	// its string form. This is the compatibility default.
	MatchSubstring MatchMode = "substring"
	// MatchGlob excludes a path when filepath.Match accepts it, trying
	// the basename as well for patterns written with a "**/" prefix.
	MatchGlob MatchMode = "glob"
	// MatchSegment excludes a path when the pattern equals one of its
	// slash-separated elements exactly.
	MatchSegment MatchMode = "segment"
)

// ParseMode converts a mode name into a MatchMode.
// Returns ("", false) for unknown names.
func ParseMode(s string) (MatchMode, bool) {
	switch MatchMode(strings.ToLower(s)) {
	case MatchSubstring:
		return MatchSubstring, true
	case MatchGlob:
		return MatchGlob, true
	case MatchSegment:
		return MatchSegment, true
	}
	return "", false
}

// Set is a disjunction of exclusion patterns sharing one match mode.
type Set struct {
	patterns []string
	mode     MatchMode
}

// New builds a Set from the given patterns. An empty or unknown mode
// falls back to MatchSubstring.
func New(patterns []string, mode MatchMode) *Set {
	switch mode {
	case MatchGlob, MatchSegment:
	default:
		mode = MatchSubstring
	}
	return &Set{patterns: patterns, mode: mode}
}

// Excluded reports whether the relative path matches any pattern in the
// set. Matching one pattern is sufficient; rules never combine.
func (s *Set) Excluded(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pat := range s.patterns {
		if s.matches(pat, relPath) {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the configured pattern list.
func (s *Set) Patterns() []string {
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Mode returns the configured match mode.
func (s *Set) Mode() MatchMode {
	return s.mode
}

func (s *Set) matches(pattern, relPath string) bool {
	switch s.mode {
	case MatchGlob:
		return globMatch(pattern, relPath)
	case MatchSegment:
		for _, seg := range strings.Split(relPath, "/") {
			if seg == pattern {
				return true
			}
		}
		return false
	default:
		return strings.Contains(relPath, pattern)
	}
}

func globMatch(pattern, relPath string) bool {
	if matched, err := filepath.Match(pattern, relPath); err == nil && matched {
		return true
	}
	// Patterns like "**/.env" should also match by basename.
	if clean := strings.TrimPrefix(pattern, "**/"); clean != pattern {
		if matched, err := filepath.Match(clean, filepath.Base(relPath)); err == nil && matched {
			return true
		}
	}
	return false
}
