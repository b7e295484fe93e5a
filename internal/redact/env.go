package redact

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// envAssignment matches a line assigning a value to a bare identifier.
var envAssignment = regexp.MustCompile(`^(\s*)([A-Za-z_][A-Za-z0-9_]*)\s*=.*$`)

// redactEnvLine blanket-redacts one environment-file line. Every
// assignment is treated as potentially sensitive, whatever its key.
func redactEnvLine(line string) (string, bool) {
	m := envAssignment.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return m[1] + m[2] + "=" + Marker, true
}

// EnvFileRule blanket-redacts the project's primary environment file at
// the staged root. An absent file is a no-op.
type EnvFileRule struct {
	Filename string
}

func (r *EnvFileRule) Name() string { return "env-file" }

func (r *EnvFileRule) Apply(root string) (int, error) {
	path := filepath.Join(root, r.Filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return rewriteLines(path, redactEnvLine)
}

// EnvVariantsRule blanket-redacts secondary environment files — names
// beginning with the primary name plus a dot, such as ".env.production"
// — found at most MaxDepth directory levels below the staged root.
type EnvVariantsRule struct {
	Prefix   string
	MaxDepth int
}

func (r *EnvVariantsRule) Name() string { return "env-variants" }

func (r *EnvVariantsRule) Apply(root string) (int, error) {
	var total int
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := strings.Count(filepath.ToSlash(rel), "/")
		if d.IsDir() {
			if path != root && depth >= r.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasPrefix(d.Name(), r.Prefix) {
			return nil
		}
		n, err := rewriteLines(path, redactEnvLine)
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
