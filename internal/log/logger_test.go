package log

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"budgman/internal/core"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelWarn, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentStorage, Output: &buf})

	logger.InfoContext(context.Background(), "Store opened", FieldPath, "/tmp/data.db")

	out := buf.String()
	if !strings.Contains(out, "component=storage") {
		t.Errorf("missing component in %q", out)
	}
	if !strings.Contains(out, "path=/tmp/data.db") {
		t.Errorf("missing path in %q", out)
	}
}

func TestDefaultLevelHidesInfo(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	logger := New(cfg)

	logger.InfoContext(context.Background(), "quiet")
	logger.Warn("loud")

	if strings.Contains(buf.String(), "quiet") {
		t.Error("info message logged at default level")
	}
	if !strings.Contains(buf.String(), "loud") {
		t.Error("warn message not logged at default level")
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("get budget 1: %w", core.ErrNotFound), ErrorTypeNotFound},
		{core.ErrForeignKey, ErrorTypeConflict},
		{core.ErrEmptyName, ErrorTypeValidation},
		{&core.InvalidBudgetIDError{Input: "abc"}, ErrorTypeValidation},
		{&fs.PathError{Op: "mkdir", Path: "/x", Err: fs.ErrPermission}, ErrorTypeIO},
		{errors.New("disk I/O error"), ErrorTypeDatabase},
	}
	for _, tt := range tests {
		if got := ErrorType(tt.err); got != tt.want {
			t.Errorf("ErrorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestContextLogger(t *testing.T) {
	if got := FromContext(context.Background()).Component(); got != "unknown" {
		t.Errorf("FromContext without logger: component = %q", got)
	}

	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentCLI, Output: &buf})
	ctx := NewContext(context.Background(), logger)

	if FromContext(ctx) != logger {
		t.Fatal("FromContext did not return the stored logger")
	}

	NewStructuredLogger(logger).LogCommandEnd(ctx, "budget ls", 3, core.ErrNotFound)
	out := buf.String()
	for _, want := range []string{"level=INFO", "command=\"budget ls\"", "error_type=not_found_error"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %q", want, out)
		}
	}
}

func TestLogFields(t *testing.T) {
	fields := NewFields().
		WithComponent(ComponentBudget).
		WithOperation(OpCreate).
		WithBudget(7).
		WithError(nil)

	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %v", fields)
	}
	if fields[FieldBudgetID] != int64(7) {
		t.Errorf("budget id field = %v", fields[FieldBudgetID])
	}
	if got := len(fields.ToSlice()); got != 6 {
		t.Errorf("ToSlice() length = %d, want 6", got)
	}
}

func TestWrapperMethodsTagComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: slog.LevelDebug, Component: ComponentApp, Output: &buf})
	logger := base.WithComponent(ComponentBackend).With(FieldBackend, "memory")
	ctx := context.Background()

	logger.Debug("one")
	logger.DebugContext(ctx, "two")
	logger.Warn("three")
	logger.ErrorContext(ctx, "four")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "component=backend") || !strings.Contains(line, "backend=memory") {
			t.Errorf("line missing component or attribute: %q", line)
		}
	}
	if base.Component() != ComponentApp {
		t.Errorf("WithComponent changed the parent: %q", base.Component())
	}
}

func TestStructuredLoggerLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentCLI, Output: &buf})

	NewStructuredLogger(logger).LogError(context.Background(), "Failed to initialize store",
		&fs.PathError{Op: "mkdir", Path: "/x", Err: fs.ErrPermission},
		ComponentStorage, OpStartup, LogFields{FieldPath: "/x/data.db"})

	out := buf.String()
	for _, want := range []string{"level=ERROR", "component=storage", "operation=startup", "error_type=io_error", "path=/x/data.db"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %q", want, out)
		}
	}
	if strings.Count(out, "component=") != 1 {
		t.Errorf("component logged more than once: %q", out)
	}
}
