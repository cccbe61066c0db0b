package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := WriteFile(path, []byte("one"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("two"), 0600); err == nil {
		t.Error("WriteFile overwrote an existing file")
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "one" {
		t.Error("Existing file content was clobbered")
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("key.b64", "/etc/tableproof/config.toml"); got != "/etc/tableproof/key.b64" {
		t.Errorf("Unexpected resolved path %q", got)
	}
	if got := ResolvePath("/var/lib/key.b64", "/etc/tableproof/config.toml"); got != "/var/lib/key.b64" {
		t.Errorf("Absolute paths must pass through, got %q", got)
	}
}
