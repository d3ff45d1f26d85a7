package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	// Test development mode
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize development logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Test production mode
	err = Init()
	if err != nil {
		t.Fatalf("failed to initialize production logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger = Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}
}

// Basic logging test (slog-backed; no Sugar)
func TestLoggerBasic(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil")
	}

	ctx := context.Background()
	logger.Info(ctx, "test message", String("k", "v"))
}

func TestLoggerNamed(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	namedLogger.Info(ctx, "test message")
}

func TestLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Info(context.Background(), "signup recorded", String("activity", "Chess Club"), Bool("ok", true))

	out := buf.String()
	if !strings.Contains(out, "signup recorded") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, `activity="Chess Club"`) {
		t.Errorf("expected activity field in output, got %q", out)
	}
	if !strings.Contains(out, "source=logger_test.go:") {
		t.Errorf("expected caller source pointing at the test, got %q", out)
	}
}

func TestLoggerContextFields(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := WithFields(context.Background(), String("request_id", "abc"))
	ctx = WithFields(ctx, String("activity", "Art Club"))
	Get().Info(ctx, "with context", Int("n", 1))

	out := buf.String()
	for _, want := range []string{"request_id=abc", `activity="Art Club"`, "n=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
	if got := len(FieldsFromContext(ctx)); got != 2 {
		t.Errorf("expected 2 context fields, got %d", got)
	}
	if WithFields(ctx) != ctx {
		t.Error("expected WithFields without fields to return ctx unchanged")
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf), WithFormat("JSON")); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	Get().Info(context.Background(), "json line", String("k", "v"))
	if !strings.Contains(buf.String(), `"msg":"json line"`) || !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}

	if err := Init(WithFormat("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	Get().Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at info level, got %q", buf.String())
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("failed to set level: %v", err)
	}
	Get().Debug(context.Background(), "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected debug line after lowering level, got %q", buf.String())
	}
	_ = SetLevelString("info")
}

func TestLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "signup.log")
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf), WithFile(path)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Warn(context.Background(), "written to file")
	if err := Sync(); err != nil {
		t.Fatalf("failed to sync logger: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("expected message in log file, got %q", string(data))
	}
	if !strings.Contains(buf.String(), "written to file") {
		t.Errorf("expected message in writer too, got %q", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = SetLevelString("info") }()

	for _, level := range []string{"debug", "INFO", " warn ", "warning", "error", ""} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("SetLevelString(%q) returned %v", level, err)
		}
	}
	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}

	_ = SetLevelString("error")
	Get().Info(context.Background(), "hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info message should be filtered at error level, got %q", buf.String())
	}
}
