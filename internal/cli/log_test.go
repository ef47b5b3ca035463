package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
		{
			name:    "warn at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Warn("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(5 * time.Millisecond)
	prog.done("Loaded demo.toml", "locations", 10)

	out := buf.String()
	for _, want := range []string{"Loaded demo.toml (", "ms)", "locations=10"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q does not contain %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	loggerFromContext(ctx).Info("hello")
	if buf.Len() == 0 {
		t.Error("attached logger should write to its buffer")
	}
}

func TestStockLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := stockLogHooks{newLogger(&buf, log.InfoLevel)}
	ctx := context.Background()

	h.OnMovement(ctx, 10, "SKU-100", 15, time.Millisecond, nil)
	if buf.Len() != 0 {
		t.Errorf("accepted movement should log at debug level only, got %q", buf.String())
	}

	h.OnMovement(ctx, 10, "SKU-100", -1000, time.Millisecond, errors.New("insufficient"))
	out := buf.String()
	if !strings.Contains(out, "Movement rejected") || !strings.Contains(out, "SKU-100") {
		t.Errorf("rejected movement should be logged as a warning, got %q", out)
	}
}

func TestHTTPLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := httpLogHooks{newLogger(&buf, log.InfoLevel)}
	h.OnRequest(context.Background(), "GET", "/locations")
	h.OnResponse(context.Background(), "GET", "/locations", 200, time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, "GET /locations") || !strings.Contains(out, "status=200") {
		t.Errorf("response log = %q", out)
	}
}
