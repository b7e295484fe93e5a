package redact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Marker is the fixed placeholder substituted for every redacted value.
const Marker = "REDACTED"

// DefaultSensitiveKeys are the canonical key patterns for structured
// files: forms of "api key", "client secret", "refresh token",
// "secret", and "token". Matching is case-insensitive and unanchored
// within the key, so "OPENAI_API_KEY" and "telegram_token" both match.
func DefaultSensitiveKeys() []string {
	return []string{
		"api[ _-]?key",
		"client[ _-]?secret",
		"refresh[ _-]?token",
		"secret",
		"token",
	}
}

// Rule rewrites one category of files under a staged root in place.
// Apply returns the number of redacted lines; a rule whose target files
// are absent returns (0, nil).
type Rule interface {
	Name() string
	Apply(root string) (int, error)
}

// DefaultRules returns the rule chain in its fixed order: the primary
// environment file, dotted environment variants, then structured files.
func DefaultRules(sensitiveKeys []string) ([]Rule, error) {
	structured, err := NewStructuredFileRule([]string{".yaml", ".yml", ".json"}, sensitiveKeys)
	if err != nil {
		return nil, err
	}
	return []Rule{
		&EnvFileRule{Filename: ".env"},
		&EnvVariantsRule{Prefix: ".env.", MaxDepth: 2},
		structured,
	}, nil
}

// Apply runs every rule against the staged root in order and returns
// the total number of redacted lines.
func Apply(root string, rules []Rule) (int, error) {
	var total int
	for _, rule := range rules {
		n, err := rule.Apply(root)
		if err != nil {
			return total, fmt.Errorf("redaction rule %s: %w", rule.Name(), err)
		}
		total += n
	}
	return total, nil
}

// rewriteLines applies transform to each line of the file and replaces
// the file atomically: the rewrite lands in a temp file in the same
// directory which is then renamed over the original. Line endings are
// preserved. Returns the number of changed lines.
func rewriteLines(path string, transform func(line string) (string, bool)) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	changed := 0
	for i, line := range lines {
		body := strings.TrimSuffix(line, "\r")
		cr := line != body
		out, ok := transform(body)
		if !ok || out == body {
			continue
		}
		if cr {
			out += "\r"
		}
		lines[i] = out
		changed++
	}
	if changed == 0 {
		return 0, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".redact-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(strings.Join(lines, "\n")); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("writing temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("replacing %s: %w", path, err)
	}
	return changed, nil
}
