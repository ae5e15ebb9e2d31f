package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, err := New(path, "info")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hello from test")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Fatalf("log line missing: %s", data)
	}
}

func TestNewLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, err := New(path, "error")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("filtered out")
	log.Error("kept")
	log.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "filtered out") {
		t.Fatal("info line leaked through error level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Fatal("error line missing")
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, err := New(path, "shouty")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("still logged")
	log.Sync()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "still logged") {
		t.Fatal("fallback level dropped info")
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	log, err := New("", "info")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("goes nowhere")
}
