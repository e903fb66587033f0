package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
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
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("render") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("layout done") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("layout done") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("cache unavailable") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Rendered text, svg")

	out := buf.String()
	if !strings.Contains(out, "Rendered text, svg (") {
		t.Errorf("progress output = %q, want message with elapsed time", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	custom := newLogger(io.Discard, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), custom)) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnDecodeComplete(ctx, "yaml", 5, 0, nil)
	h.OnLayoutComplete(ctx, "compact", 3, 0, errors.New("self join"))
	h.OnCacheHit(ctx, "artifact")
	h.OnCacheSet(ctx, "artifact", 42)

	out := buf.String()
	for _, want := range []string{"decode done", "events=5", "layout failed", "self join", "cache hit", "bytes=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("hook output lacks %q:\n%s", want, out)
		}
	}
}

func TestVerboseLogging(t *testing.T) {
	isolate(t)
	script := writeFile(t, t.TempDir(), "branch.json", branchScript)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", "-o", filepath.Join(t.TempDir(), "out.txt"), script})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(logs.String(), "layout done") {
		t.Errorf("debug hook output at info level:\n%s", logs.String())
	}

	logs.Reset()
	c.SetLogLevel(LogDebug)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "layout done") {
		t.Errorf("no hook output at debug level:\n%s", logs.String())
	}
}
