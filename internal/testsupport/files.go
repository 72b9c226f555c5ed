package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with placeholder content, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if content == "" {
		content = "placeholder"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
