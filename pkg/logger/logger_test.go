package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		records = append(records, record)
	}
	return records
}

func TestErrorFlavours(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: slog.LevelDebug, Format: FormatJSON, Output: &buf})

	log.BusinessError("expense rejected", errors.New("sum mismatch"), "user_id", "u-1")
	log.InternalError("insert failed", errors.New("db down"))
	log.InternalError("ignored", nil)
	log.Critical("shutting down")

	records := decodeLines(t, &buf)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0]["level"] != "WARN" || records[0]["err"] != "sum mismatch" || records[0]["user_id"] != "u-1" {
		t.Fatalf("unexpected business error record %v", records[0])
	}
	if records[1]["level"] != "ERROR" {
		t.Fatalf("unexpected internal error record %v", records[1])
	}
	if records[2]["level"] != "CRITICAL" {
		t.Fatalf("expected CRITICAL level, got %v", records[2]["level"])
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})
	fallback := Nop()

	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatalf("expected fallback without a stored logger")
	}

	ctx := NewContext(context.Background(), base.With("request_id", "req-1"))
	FromContext(ctx, fallback).Info("handled")

	records := decodeLines(t, &buf)
	if len(records) != 1 || records[0]["request_id"] != "req-1" {
		t.Fatalf("expected request scoped record, got %v", records)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("", "development") != slog.LevelDebug {
		t.Fatalf("expected debug in development")
	}
	if ParseLevel("", "production") != slog.LevelInfo {
		t.Fatalf("expected info by default")
	}
	if ParseLevel("FATAL", "") != LevelCritical {
		t.Fatalf("expected critical")
	}
	if ParseFormat(" Pretty ") != FormatPretty {
		t.Fatalf("expected pretty")
	}
	if ParseFormat("yaml") != FormatJSON {
		t.Fatalf("expected json fallback")
	}
}
