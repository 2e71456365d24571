package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/eslsoft/atservices/internal/infrastructure/config"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&config.Config{Log: config.LogConfig{Level: "debug", Format: "json"}}, &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.WithField("corpus", "collatinus").Debug("ingest started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if entry["corpus"] != "collatinus" || entry["msg"] != "ingest started" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&config.Config{Log: config.LogConfig{Level: "info", Format: "text"}}, &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, err := NewLogger(&config.Config{Log: config.LogConfig{Level: "loud"}}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
