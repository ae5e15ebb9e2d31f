package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	if got != want {
		t.Fatalf("expected defaults %+v, got %+v", want, got)
	}
}

func TestLoadOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_path: /tmp/custom.db\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.DBPath != "/tmp/custom.db" {
		t.Fatalf("db_path not applied: %q", got.DBPath)
	}
	if got.LogLevel != "debug" {
		t.Fatalf("log_level not applied: %q", got.LogLevel)
	}
	// Unset fields keep their defaults.
	if got.LogPath != Default().LogPath {
		t.Fatalf("unset log_path should stay default, got %q", got.LogPath)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- bad"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverridesDBPath(t *testing.T) {
	t.Setenv("FOCUSKIT_DB", "/tmp/env.db")
	got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if got.DBPath != "/tmp/env.db" {
		t.Fatalf("env override not applied: %q", got.DBPath)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("db_path: /tmp/file.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOCUSKIT_DB", "/tmp/env.db")

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.DBPath != "/tmp/env.db" {
		t.Fatalf("env should beat file, got %q", got.DBPath)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Fatalf("unexpected path: %q", path)
	}
}
