package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfigure_LevelFiltersEvents(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})

	Info().Msg("info message")
	Warn().Msg("warn message")

	out := buf.String()
	if strings.Contains(out, "info message") {
		t.Errorf("info event must be suppressed at warn level, got %q", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn event must be emitted at warn level, got %q", out)
	}
}

func TestConfigure_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "verbose", Output: &buf})

	Debug().Msg("debug message")
	Info().Msg("info message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Errorf("debug event must be suppressed at the fallback level, got %q", out)
	}
	if !strings.Contains(out, "info message") {
		t.Errorf("info event must be emitted at the fallback level, got %q", out)
	}
}

func TestConfigure_JSONOutputCarriesLevelField(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf})

	Error().Str("studentID", "id-1").Msg("write failed")

	out := buf.String()
	if !strings.Contains(out, `"level":"error"`) || !strings.Contains(out, `"studentID":"id-1"`) {
		t.Errorf("expected structured JSON event with level and fields, got %q", out)
	}
}
