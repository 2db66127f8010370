package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSlogLogger_KeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	l.Info(context.Background(), "login attempt", "email", "a@b.com")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if rec["msg"] != "login attempt" || rec["email"] != "a@b.com" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	child := l.With("component", "httpapi")
	child.Warn(context.Background(), "slow request")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if rec["component"] != "httpapi" {
		t.Fatalf("With fields not propagated: %v", rec)
	}
}

func TestZapLogger_ImplementsLogger(t *testing.T) {
	z, err := NewProductionZap()
	if err != nil {
		t.Fatalf("NewProductionZap: %v", err)
	}
	defer z.Sync() //nolint:errcheck

	var _ Logger = NewZapLogger(z)
}
