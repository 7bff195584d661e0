package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := InitWriter(nil); err == nil {
		t.Fatal("expected error for nil writer")
	}
}

func TestLoggerFieldsAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := WithRequestID(context.Background(), "req-42")
	Get().Info(ctx, "query done", String("query", "all_dishes"), Int("rows", 5), Bool("ok", true))

	out := buf.String()
	for _, want := range []string{"msg=\"query done\"", "query=all_dishes", "rows=5", "ok=true", "request_id=req-42", "source="} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ctx := context.Background()

	Get().Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %q", buf.String())
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("SetLevelString: %v", err)
	}
	Get().Debug(ctx, "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug record missing: %q", buf.String())
	}

	if err := SetLevelString("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	_ = SetLevelString("info")
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("repository").Error(context.Background(), "query failed", Error(errors.New("boom")))
	out := buf.String()
	if !strings.Contains(out, "logger=repository") || !strings.Contains(out, "error=boom") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info(context.Background(), "discarded")
	l.Named("x").Error(context.Background(), "discarded")
}
