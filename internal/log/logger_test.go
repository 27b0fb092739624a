package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: "roster",
		Handler:   slog.NewJSONHandler(&buf, nil),
	})

	logger.Info("Player added", "player", "Ana")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}
	if record["component"] != "roster" {
		t.Errorf("Expected component roster, got %v", record["component"])
	}
	if record["player"] != "Ana" {
		t.Errorf("Expected player Ana, got %v", record["player"])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: "app",
		Handler:   slog.NewJSONHandler(&buf, nil),
	})

	child := logger.WithComponent("worker")
	if child.Component() != "worker" {
		t.Errorf("Expected component worker, got %q", child.Component())
	}

	child.Info("Started")
	if !strings.Contains(buf.String(), `"component":"worker"`) {
		t.Errorf("Child log missing component, got %q", buf.String())
	}
}

func TestNewJSONFormat(t *testing.T) {
	logger := New(Config{Component: "app", Format: "json"})
	if logger.Logger == nil {
		t.Fatal("Expected a usable logger")
	}
}
