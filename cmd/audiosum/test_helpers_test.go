package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeTestConfig writes a config file with all paths rooted in a temp
// directory and returns its path. extra is appended verbatim for tests that
// need additional sections.
func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
download_dir = %q
temp_dir = %q
log_dir = %q
settings_path = %q

[download]
progress = false

[logging]
level = "error"
`,
		filepath.Join(base, "downloads"),
		filepath.Join(base, "tmp"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "settings.json"),
	)
	content += extra

	path := filepath.Join(base, "audiosum.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
