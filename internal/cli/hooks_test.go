package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amastis/pyinstaller-excluder/pkg/observability"
)

func TestRegisterDebugHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	tests := []struct {
		name  string
		level log.Level
		want  bool
	}{
		{"info level", log.InfoLevel, false},
		{"debug level", log.DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observability.Reset()
			got := registerDebugHooks(newLogger(io.Discard, tt.level))
			if got != tt.want {
				t.Errorf("registerDebugHooks() = %v, want %v", got, tt.want)
			}
			_, isLog := observability.Pipeline().(logHooks)
			if isLog != tt.want {
				t.Errorf("pipeline hooks registered = %v, want %v", isLog, tt.want)
			}
		})
	}
}

func TestLogHooksWriteDebugLines(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnResolveStart(ctx, 2)
	h.OnResolveComplete(ctx, 4, time.Millisecond, nil)
	h.OnPatchComplete(ctx, "app.spec", 1, true, nil)
	h.OnSourceLoad(ctx, "interpreter python3", 5, time.Millisecond, nil)

	out := buf.String()
	for _, want := range []string{"resolve started", "resolve finished", "patch finished", "source loaded"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestVerboseRunEmitsHookLines(t *testing.T) {
	t.Cleanup(observability.Reset)
	dir := testProject(t, "app.spec")

	var logs bytes.Buffer
	c := &CLI{
		Logger: newLogger(&logs, log.DebugLevel),
		Stdout: io.Discard,
		Getenv: func(string) string { return "" },
	}
	root := c.RootCommand()
	root.SetArgs([]string{"exclude", dir, "--inspect-file", filepath.Join(dir, "inspect.json")})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"source loaded", "resolve finished", "patch finished"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("verbose log missing %q", want)
		}
	}
}
