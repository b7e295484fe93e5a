package redact

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
)

// structuredLine splits a "key: value" or "key = value" line into
// indent, key (quotes included), and value. The key may be a quoted
// JSON member name, a YAML mapping key, or a list-item key.
var structuredLine = regexp.MustCompile(`^(\s*(?:- )?)("[^"]+"|'[^']+'|[A-Za-z0-9_.-]+)\s*[:=]\s*(.*)$`)

// StructuredFileRule redacts sensitive entries in structured text files
// (YAML and JSON). Only lines whose key matches one of the sensitive
// patterns change; the value is replaced by the marker with a
// normalized ": " separator, keeping the key's quoting, the value's
// quoting, and any trailing comma. Every other line stays untouched.
type StructuredFileRule struct {
	Extensions []string
	keys       *regexp.Regexp
}

// NewStructuredFileRule compiles the sensitive-key patterns into a rule
// for the given file extensions (with leading dots, e.g. ".yaml").
func NewStructuredFileRule(extensions, sensitiveKeys []string) (*StructuredFileRule, error) {
	expr := "(?i)" + strings.Join(sensitiveKeys, "|")
	keys, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling sensitive-key patterns: %w", err)
	}
	return &StructuredFileRule{Extensions: extensions, keys: keys}, nil
}

func (r *StructuredFileRule) Name() string { return "structured-files" }

func (r *StructuredFileRule) Apply(root string) (int, error) {
	var total int
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !r.hasExtension(ext) {
			return nil
		}
		n, err := rewriteLines(path, r.redactLine)
		if err != nil {
			return err
		}
		total += n
		return nil
	})
	if err != nil {
		return total, err
	}
	return total, nil
}

func (r *StructuredFileRule) hasExtension(ext string) bool {
	for _, e := range r.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (r *StructuredFileRule) redactLine(line string) (string, bool) {
	m := structuredLine.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	indent, key, value := m[1], m[2], m[3]
	if !r.keys.MatchString(strings.Trim(key, `"'`)) {
		return line, false
	}

	value = strings.TrimRight(value, " \t")
	comma := ""
	if strings.HasSuffix(value, ",") {
		comma = ","
		value = strings.TrimRight(value[:len(value)-1], " \t")
	}
	marker := Marker
	switch {
	case strings.HasPrefix(value, `"`):
		marker = `"` + Marker + `"`
	case strings.HasPrefix(value, `'`):
		marker = `'` + Marker + `'`
	}
	return indent + key + ": " + marker + comma, true
}
