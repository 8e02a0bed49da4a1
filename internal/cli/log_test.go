package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("page rendered") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("page rendered") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("page rendered") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("lane overflow") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Rendered 8 pages")

	out := buf.String()
	if !strings.Contains(out, "Rendered 8 pages (") {
		t.Errorf("done() output %q missing message with elapsed time", out)
	}
	if !strings.Contains(out, "s)") {
		t.Errorf("done() output %q missing duration unit", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext() without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if got := loggerFromContext(ctx); got != l {
		t.Errorf("loggerFromContext() = %p, want %p", got, l)
	}
}
