package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestBuildLevel(t *testing.T) {
	var buf bytes.Buffer
	log := build(&buf, "warn")

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %s", buf.String())
	}

	log.Warn().Str("k", "v").Msg("shown")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["service"] != "medical-scheduler" || entry["k"] != "v" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestBuildUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := build(&buf, "loud")

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	if bytes.Count(buf.Bytes(), []byte("\n")) != 1 {
		t.Errorf("expected one line, got %q", buf.String())
	}
}
