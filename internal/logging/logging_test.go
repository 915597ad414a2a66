package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", "json", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	logger.Info().Msg("hidden")
	logger.Warn().Str("field", "email").Msg("shown")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single json entry, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "shown" || entry["field"] != "email" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("", "console", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info().Msg("ready")
	if !bytes.Contains(buf.Bytes(), []byte("ready")) {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New("loud", "json", nil); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := New("info", "xml", nil); err == nil {
		t.Fatalf("expected format error")
	}
}
