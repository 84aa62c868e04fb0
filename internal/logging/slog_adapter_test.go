// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func slogForBuffer(buf *bytes.Buffer) *slog.Logger {
	handler := &SlogHandler{logger: NewTestLogger(buf)}
	return slog.New(handler)
}

func TestSlogHandlerWritesZerologJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slogForBuffer(&buf)

	logger.Info("tree started", slog.String("supervisor", "filmatlas"), slog.Int("services", 2))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (raw: %s)", err, buf.String())
	}
	if entry["message"] != "tree started" {
		t.Errorf("message = %v, want 'tree started'", entry["message"])
	}
	if entry["supervisor"] != "filmatlas" {
		t.Errorf("supervisor = %v, want filmatlas", entry["supervisor"])
	}
	if entry["services"] != float64(2) {
		t.Errorf("services = %v, want 2", entry["services"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestSlogHandlerLevels(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slogForBuffer(&buf)
			logger.Log(context.Background(), tt.level, "msg")

			if !strings.Contains(buf.String(), `"level":"`+tt.want+`"`) {
				t.Errorf("output %q missing level %q", buf.String(), tt.want)
			}
		})
	}
}

func TestSlogHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slogForBuffer(&buf).With(slog.String("component", "supervisor"))

	logger.Info("restarting")

	if !strings.Contains(buf.String(), `"component":"supervisor"`) {
		t.Errorf("output %q missing pre-set attr", buf.String())
	}
}

func TestSlogHandlerGroupPrefixesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slogForBuffer(&buf).WithGroup("tree")

	logger.Info("restarting", slog.String("service", "http-server"))

	if !strings.Contains(buf.String(), `"tree.service":"http-server"`) {
		t.Errorf("output %q missing grouped attr", buf.String())
	}
}
