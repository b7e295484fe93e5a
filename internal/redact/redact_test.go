package redact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func mustDefaultRules(t *testing.T) []Rule {
	t.Helper()
	rules, err := DefaultRules(DefaultSensitiveKeys())
	if err != nil {
		t.Fatal(err)
	}
	return rules
}

func TestEnvFileRule_Blanket(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, ".env", strings.Join([]string{
		"# bot credentials",
		"TELEGRAM_TOKEN=12345:abcdef",
		"OPENAI_API_KEY=sk-abc123",
		"DB_PATH=/data/app.sqlite3",
		"",
		"not an assignment line",
	}, "\n"))

	rule := &EnvFileRule{Filename: ".env"}
	n, err := rule.Apply(root)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if n != 3 {
		t.Errorf("redacted lines = %d, want 3", n)
	}

	want := strings.Join([]string{
		"# bot credentials",
		"TELEGRAM_TOKEN=" + Marker,
		"OPENAI_API_KEY=" + Marker,
		"DB_PATH=" + Marker,
		"",
		"not an assignment line",
	}, "\n")
	if got := readFile(t, path); got != want {
		t.Errorf("env file after redaction:\n%s\nwant:\n%s", got, want)
	}
}

func TestEnvFileRule_MissingIsNoOp(t *testing.T) {
	rule := &EnvFileRule{Filename: ".env"}
	n, err := rule.Apply(t.TempDir())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if n != 0 {
		t.Errorf("redacted lines = %d, want 0", n)
	}
}

func TestEnvVariantsRule_DepthLimit(t *testing.T) {
	root := t.TempDir()
	shallow := writeFile(t, root, ".env.production", "KEY=secret\n")
	oneDeep := writeFile(t, root, "config/.env.local", "KEY=secret\n")
	twoDeep := writeFile(t, root, "a/b/.env.test", "KEY=secret\n")
	threeDeep := writeFile(t, root, "a/b/c/.env.deep", "KEY=secret\n")
	primary := writeFile(t, root, ".env", "KEY=secret\n")

	rule := &EnvVariantsRule{Prefix: ".env.", MaxDepth: 2}
	if _, err := rule.Apply(root); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	redactedLine := "KEY=" + Marker + "\n"
	for _, path := range []string{shallow, oneDeep, twoDeep} {
		if got := readFile(t, path); got != redactedLine {
			t.Errorf("%s = %q, want %q", path, got, redactedLine)
		}
	}
	// Beyond the depth limit and the primary file are untouched.
	for _, path := range []string{threeDeep, primary} {
		if got := readFile(t, path); got != "KEY=secret\n" {
			t.Errorf("%s = %q, want untouched", path, got)
		}
	}
}

func TestStructuredFileRule_OnlyMatchingKeysChange(t *testing.T) {
	root := t.TempDir()
	input := strings.Join([]string{
		"name: demo",
		`api_key: "abc123"`,
		"telegram_token: 12345:abcdef",
		"refresh_token: 'xyz'",
		"timezone: Europe/Kyiv",
		"nested:",
		"  client_secret: topsecret",
		"  instance: spud",
	}, "\n")
	path := writeFile(t, root, "config.yaml", input)

	rule, err := NewStructuredFileRule([]string{".yaml", ".yml", ".json"}, DefaultSensitiveKeys())
	if err != nil {
		t.Fatal(err)
	}
	n, err := rule.Apply(root)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if n != 4 {
		t.Errorf("redacted lines = %d, want 4", n)
	}

	want := strings.Join([]string{
		"name: demo",
		`api_key: "` + Marker + `"`,
		"telegram_token: " + Marker,
		"refresh_token: '" + Marker + "'",
		"timezone: Europe/Kyiv",
		"nested:",
		"  client_secret: " + Marker,
		"  instance: spud",
	}, "\n")
	if got := readFile(t, path); got != want {
		t.Errorf("yaml after redaction:\n%s\nwant:\n%s", got, want)
	}

	// The redacted file is still valid YAML.
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(readFile(t, path)), &doc); err != nil {
		t.Errorf("redacted yaml no longer parses: %v", err)
	}
}

func TestStructuredFileRule_JSON(t *testing.T) {
	root := t.TempDir()
	input := strings.Join([]string{
		"{",
		`  "name": "demo",`,
		`  "api_key": "abc123",`,
		`  "token": "t-1"`,
		"}",
	}, "\n")
	path := writeFile(t, root, "settings.json", input)

	rule, err := NewStructuredFileRule([]string{".json"}, DefaultSensitiveKeys())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rule.Apply(root); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := strings.Join([]string{
		"{",
		`  "name": "demo",`,
		`  "api_key": "` + Marker + `",`,
		`  "token": "` + Marker + `"`,
		"}",
	}, "\n")
	if got := readFile(t, path); got != want {
		t.Errorf("json after redaction:\n%s\nwant:\n%s", got, want)
	}
}

func TestStructuredFileRule_NonMatchingLinesByteIdentical(t *testing.T) {
	root := t.TempDir()
	lines := []string{
		"server:",
		"  host:   0.0.0.0   ",
		"  port: 8080",
		"# token: commented out",
		"description: this mentions a token in prose",
	}
	path := writeFile(t, root, "app.yml", strings.Join(lines, "\n"))

	rule, err := NewStructuredFileRule([]string{".yaml", ".yml"}, DefaultSensitiveKeys())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rule.Apply(root); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got := strings.Split(readFile(t, path), "\n")
	for i, line := range lines {
		if i == 4 {
			continue // "description" line is checked separately below
		}
		if got[i] != line {
			t.Errorf("line %d changed: %q -> %q", i, line, got[i])
		}
	}
	// The prose value after "description:" does not contain a sensitive
	// key name, so it stays as-is too.
	if got[4] != lines[4] {
		t.Errorf("description line changed: %q", got[4])
	}
}

func TestApply_Idempotent(t *testing.T) {
	root := t.TempDir()
	envPath := writeFile(t, root, ".env", "API_KEY=abc123\nNAME=spud\n")
	yamlPath := writeFile(t, root, "config.yaml", "api_key: \"abc123\"\nname: demo\n")

	rules := mustDefaultRules(t)
	if _, err := Apply(root, rules); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	firstEnv := readFile(t, envPath)
	firstYaml := readFile(t, yamlPath)

	n, err := Apply(root, rules)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if n != 0 {
		t.Errorf("second pass redacted %d lines, want 0", n)
	}
	if got := readFile(t, envPath); got != firstEnv {
		t.Errorf("env file not stable across passes:\n%s", got)
	}
	if got := readFile(t, yamlPath); got != firstYaml {
		t.Errorf("yaml file not stable across passes:\n%s", got)
	}
}

func TestApply_EmptyTree(t *testing.T) {
	n, err := Apply(t.TempDir(), mustDefaultRules(t))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if n != 0 {
		t.Errorf("redacted lines = %d, want 0", n)
	}
}

func TestRewriteLines_PreservesCRLF(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, ".env", "KEY=value\r\nOTHER=thing\r\n")

	rule := &EnvFileRule{Filename: ".env"}
	if _, err := rule.Apply(root); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := "KEY=" + Marker + "\r\nOTHER=" + Marker + "\r\n"
	if got := readFile(t, path); got != want {
		t.Errorf("crlf file = %q, want %q", got, want)
	}
}
