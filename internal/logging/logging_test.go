package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSetupDevMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	logger := Setup(&buf, true)

	logger.Debug("test debug")
	slog.Info("test info")

	output := buf.String()
	if !strings.Contains(output, "test debug") {
		t.Error("expected debug message visible in dev mode")
	}
	if !strings.Contains(output, "test info") {
		t.Error("expected default logger to be replaced")
	}
	if !strings.Contains(output, "app=hvr") {
		t.Errorf("expected app attribute, got %q", output)
	}
}

func TestSetupProdMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	logger := Setup(&buf, false)

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("prod output is not JSON: %v", err)
	}
	if entry["msg"] != "shown" || entry["k"] != "v" {
		t.Errorf("entry = %v", entry)
	}
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		want   []string
	}{
		{"ok", "/api/customers", http.StatusOK, []string{"level=INFO", "method=GET", "path=/api/customers", "status=200", "ip=192.0.2.1"}},
		{"client error", "/api/customers/x", http.StatusNotFound, []string{"level=WARN", "status=404"}},
		{"server error", "/api/projects", http.StatusInternalServerError, []string{"level=ERROR", "status=500"}},
		{"health skipped", "/health", http.StatusOK, nil},
		{"beacon skipped", "/api/public/track/pageview", http.StatusNoContent, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			req := httptest.NewRequest("GET", tt.path, nil)
			rec := httptest.NewRecorder()
			RequestLogger(logger, inner).ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.want == nil {
				if buf.Len() > 0 {
					t.Errorf("expected no log, got %q", buf.String())
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("log %q missing %q", buf.String(), w)
				}
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "[::1]:5050"
	if got := ClientIP(r); got != "::1" {
		t.Errorf("ClientIP = %q, want ::1", got)
	}

	r.RemoteAddr = "pipe"
	if got := ClientIP(r); got != "pipe" {
		t.Errorf("ClientIP = %q, want pipe", got)
	}
}
