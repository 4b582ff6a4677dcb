package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/nexusshelf/internal/config"
	"github.com/blackwell-systems/nexusshelf/internal/logging"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nexusshelf.log")
	log, err := logging.New(config.LogConfig{Level: "info", File: path}, logging.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("hidden")
	log.Info("catalog loaded")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 entry, got %d: %q", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry["msg"] != "catalog loaded" || entry["level"] != "info" {
		t.Errorf("entry = %v", entry)
	}
	if entry["logger"] != "nexusshelf" {
		t.Errorf("logger name = %v", entry["logger"])
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.log")
	log, err := logging.New(config.LogConfig{Level: "warn", File: path}, logging.Options{Verbose: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("visible")
	_ = log.Sync()
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "visible") {
		t.Errorf("debug entry missing: %q", data)
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := logging.New(config.LogConfig{Level: "loud"}, logging.Options{}); err == nil {
		t.Error("expected error for unknown level")
	}
}
