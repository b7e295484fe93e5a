package staging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/assistkit/sanibundle/internal/pathfilter"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCopy_FilteredSubset(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, src, ".env", "API_KEY=abc123\n")
	writeFile(t, src, "bot/main.py", "print('hi')\n")
	writeFile(t, src, "config.yaml", "name: demo\n")
	writeFile(t, src, "cache/tmp.pyc", "binary")
	writeFile(t, src, "logs/app.log", "line\n")

	filter := pathfilter.New([]string{"cache", ".log"}, pathfilter.MatchSubstring)
	stats, err := Copy(src, dst, filter)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if stats.Copied != 3 {
		t.Errorf("Copied = %d, want 3", stats.Copied)
	}

	// Included files arrive with path and content intact.
	for rel, want := range map[string]string{
		".env":        "API_KEY=abc123\n",
		"bot/main.py": "print('hi')\n",
		"config.yaml": "name: demo\n",
	} {
		data, err := os.ReadFile(filepath.Join(dst, rel))
		if err != nil {
			t.Fatalf("staged %s: %v", rel, err)
		}
		if string(data) != want {
			t.Errorf("staged %s = %q, want %q", rel, data, want)
		}
	}

	// Excluded files never appear.
	for _, rel := range []string{"cache/tmp.pyc", "logs/app.log"} {
		if _, err := os.Stat(filepath.Join(dst, rel)); !os.IsNotExist(err) {
			t.Errorf("excluded file %s was staged", rel)
		}
	}
}

func TestCopy_SkipsSymlinks(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, src, "keep.txt", "ok\n")
	if err := os.Symlink("/nonexistent/target", filepath.Join(src, "dangling")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	stats, err := Copy(src, dst, pathfilter.New(nil, pathfilter.MatchSubstring))
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if stats.Copied != 1 {
		t.Errorf("Copied = %d, want 1", stats.Copied)
	}
	if _, err := os.Stat(filepath.Join(dst, "dangling")); !os.IsNotExist(err) {
		t.Error("symlink was staged")
	}
}

func TestCopy_MissingRoot(t *testing.T) {
	dst := t.TempDir()
	_, err := Copy(filepath.Join(t.TempDir(), "nope"), dst, pathfilter.New(nil, pathfilter.MatchSubstring))
	if err == nil {
		t.Fatal("expected error for missing project root")
	}
}

func TestCopy_NeverWritesIntoSource(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, src, "a/b/c.txt", "deep\n")

	if _, err := Copy(src, dst, pathfilter.New(nil, pathfilter.MatchSubstring)); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "a" {
		t.Errorf("source tree changed: %v", entries)
	}
}

func TestNewScratch_Unique(t *testing.T) {
	a, err := NewScratch()
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(a)
	b, err := NewScratch()
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(b)

	if a == b {
		t.Errorf("scratch dirs collide: %s", a)
	}
}
