package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithTenantID(context.Background(), "t-123")
	ctx = logg.WithRequestID(ctx, "req-9")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["tenant_id"] != "t-123" {
		t.Fatalf("missing tenant_id field: %v", entry)
	}
	if entry["request_id"] != "req-9" {
		t.Fatalf("missing request_id field: %v", entry)
	}
	if entry["service"] != "test" {
		t.Fatalf("missing service field: %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("expected debug level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for empty value")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for garbage value")
	}
}

func TestBaseLoggerUsedWithoutContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "bare", Output: &buf})
	logg.Info(context.Background(), "plain")
	if !bytes.Contains(buf.Bytes(), []byte(`"plain"`)) {
		t.Fatalf("expected message in output: %s", buf.String())
	}
}
