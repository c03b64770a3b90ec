package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestComponentIsStamped(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentSummary, Output: &buf})
	l.Info("summary built", FieldKind, "expense")
	out := buf.String()
	if !strings.Contains(out, "component=summary") || !strings.Contains(out, "kind=expense") {
		t.Fatalf("missing fields in %q", out)
	}

	buf.Reset()
	l.WithComponent(ComponentHTTP).Warn("slow")
	if !strings.Contains(buf.String(), "component=http") {
		t.Fatalf("component override missing in %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentApp, Output: &buf})
	l.Debug("hidden")
	l.Error("boom", FieldError, "x")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"component":"app"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo, "nope": slog.LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	l := New(DefaultConfig())
	ctx := NewContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatalf("logger not carried by context")
	}
	if FromContext(context.Background()).Component() != "unknown" {
		t.Fatalf("fallback logger should be tagged unknown")
	}
}

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Level: slog.LevelInfo, Component: ComponentHTTP, Output: &buf}))
	req := httptest.NewRequest("GET", "/api/arcs?size=1", nil)

	sl.LogHTTPEnd(context.Background(), req, "req_1", 400, 3, "1.2.3.4")
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "status_code=400") {
		t.Fatalf("4xx should log at warn: %q", buf.String())
	}
	buf.Reset()
	sl.LogError(context.Background(), "failed", errors.New("db down"), OpSummary, nil)
	if !strings.Contains(buf.String(), "db down") || !strings.Contains(buf.String(), "operation=summary") {
		t.Fatalf("unexpected error log: %q", buf.String())
	}
}
