package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProfileInitAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elvish.yaml")

	out, err := runCmd(t, "", "profile", "init", path)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, `"elvish"`) {
		t.Errorf("name should derive from the file name: %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("profile file not written: %v", err)
	}

	out, err = runCmd(t, "", "profile", "check", path)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("expected a validation summary, got %q", out)
	}
}

func TestProfileInitNamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang.yaml")

	out, err := runCmd(t, "", "profile", "init", "--name", "Quenya", path)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, `"Quenya"`) {
		t.Errorf("explicit name ignored: %q", out)
	}
}

func TestProfileInitRefusesOverwrite(t *testing.T) {
	path := writeTestProfile(t)

	if _, err := runCmd(t, "", "profile", "init", path); err == nil {
		t.Error("overwrite without confirmation should fail")
	}

	if _, err := runCmd(t, "", "profile", "init", "--force", path); err != nil {
		t.Errorf("--force overwrite failed: %v", err)
	}
}

func TestProfileCheckRejectsBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("name: x\nseed: s\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCmd(t, "", "profile", "check", path); err == nil {
		t.Error("profile without a phonology should fail validation")
	}
}
