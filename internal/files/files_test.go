//go:build !windows

package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.json")

	if err := AtomicWrite(path, []byte(`{"entries":[]}`), 0o600); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"entries":[]}` {
		t.Errorf("unexpected content: %s", data)
	}

	// Overwrite must replace, not append.
	if err := AtomicWrite(path, []byte("second"), 0o600); err != nil {
		t.Fatalf("AtomicWrite overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("overwrite left stale content: %s", data)
	}

	// No temp files may remain.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.Name() != "lexicon.json" {
			t.Errorf("leftover file after atomic write: %s", e.Name())
		}
	}
}

func TestRejectSymlinkPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.Mkdir(target, 0o700); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"Plain path", filepath.Join(dir, "plain.json"), false},
		{"Missing parents", filepath.Join(dir, "a", "b", "c.json"), false},
		{"Symlinked parent", filepath.Join(link, "c.json"), true},
		{"Empty path", "  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RejectSymlinkPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("RejectSymlinkPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
