package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	airerrors "github.com/YuminosukeSato/airbnb-price/pkg/errors"
)

// TestLoggerInterface tests the TestLogger implementation of Logger
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", "operation", "test")
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")
	testLogger.Error("error message", fmt.Errorf("test error"), "error_code", "TEST_ERROR")

	if buffer.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}
	if !testLogger.ContainsField("number", 42.0) { // JSON unmarshaling converts numbers to float64
		t.Error("Expected field number=42 not found")
	}
	if !testLogger.ContainsField(ErrorKey, "test error") {
		t.Error("Leading error should be recorded under the error key")
	}
	if !testLogger.ContainsField("error_code", "TEST_ERROR") {
		t.Error("Fields after a leading error should stay paired")
	}
}

// TestLoggerWith tests the With method for context-aware logging
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ComponentKey, "dataset",
		CityKey, "berlin",
	)
	contextLogger.Info("contextual message", SourceKey, SourceRaw)

	if !testLogger.ContainsField(ComponentKey, "dataset") {
		t.Error("Component context not found")
	}
	if !testLogger.ContainsField(CityKey, "berlin") {
		t.Error("City context not found")
	}
	if !testLogger.ContainsField(SourceKey, SourceRaw) {
		t.Error("Source field not found")
	}
}

// TestLoggerEnabled tests the Enabled method
func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

func TestZerologLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.With(ComponentKey, "modelutil").Info("model evaluation",
		RMSEKey, 12.5,
		R2ScoreKey, 0.75,
	)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["message"] != "model evaluation" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry[ComponentKey] != "modelutil" {
		t.Errorf("component = %v", entry[ComponentKey])
	}
	if entry[RMSEKey] != 12.5 || entry[R2ScoreKey] != 0.75 {
		t.Errorf("metrics not recorded: %v", entry)
	}
}

func TestZerologLogger_ErrorStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	err := airerrors.NewColumnError("PrepareFeatures", "price")
	logger.Error("prepare failed", err, OperationKey, OperationTransform)

	out := buf.String()
	if !strings.Contains(out, `"error":"airprice: PrepareFeatures: column \"price\" not found"`) {
		t.Errorf("error not recorded: %s", out)
	}
	if !strings.Contains(out, StacktraceKey) {
		t.Errorf("expected stack trace attribute: %s", out)
	}
	if !strings.Contains(out, `"`+OperationKey+`":"transform"`) {
		t.Errorf("operation not recorded: %s", out)
	}
}

func TestZerologLogger_Enabled(t *testing.T) {
	logger := NewZerologLogger(&bytes.Buffer{}, LevelWarn)
	ctx := context.Background()

	if logger.Enabled(ctx, LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "verbose", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetLoggerRoutesWarnings(t *testing.T) {
	previous := GetLogger()
	defer SetLogger(previous)

	testLogger, _ := NewTestLogger(LevelDebug)
	SetLogger(testLogger)

	if GetLogger() != testLogger {
		t.Fatal("GetLogger should return the installed logger")
	}

	airerrors.Warn(airerrors.NewUndefinedMetricWarning("r2", "constant y_true", 0))

	if !testLogger.ContainsMessage("'r2' is ill-defined") {
		t.Error("warning should be logged through the installed logger")
	}
}

func TestSetupLogger(t *testing.T) {
	previous := GetLogger()
	defer SetLogger(previous)

	var buf bytes.Buffer
	if err := SetupLogger(&buf, "warn", "json"); err != nil {
		t.Fatal(err)
	}
	GetLogger().Info("hidden")
	GetLogger().Warn("shown", CityKey, "berlin")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"dataset.city":"berlin"`) {
		t.Errorf("unexpected output: %s", out)
	}

	if err := SetupLogger(&buf, "info", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := SetupLogger(&buf, "verbose", "json"); err == nil {
		t.Error("expected error for unknown level")
	}
}
