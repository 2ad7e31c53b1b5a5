package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelInfo)

	logger.Warn("no team found", "club_team", "OGC Nice", "search", "Nice", "error", errors.New("empty response"))

	out := buf.String()
	for _, want := range []string{`"msg":"no team found"`, `"club_team":"OGC Nice"`, `"search":"Nice"`, `"error":"empty response"`, `"level":"WARN"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output: %s", want, out)
		}
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelWarn)

	logger.Info("hidden")
	logger.Debug("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
}

func TestLogger_OddArgsAndNil(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelDebug).With("job", "update-last-games")

	logger.Info("dangling", "key")
	if !strings.Contains(buf.String(), `"key":null`) {
		t.Fatalf("expected dangling key to be logged as null: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"job":"update-last-games"`) {
		t.Fatalf("expected With fields to be attached: %s", buf.String())
	}

	var nilLogger *Logger
	nilLogger.Info("nil logger must not panic")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%s want %s", raw, got, want)
		}
	}
}
