package python

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultPython is the interpreter queried when none is configured.
const DefaultPython = "python3"

// Interpreter reads installed package metadata from a Python interpreter's
// environment by running `pip inspect` (pip 22.2 or newer).
type Interpreter struct {
	// Python is the interpreter executable (default: DefaultPython).
	Python string
	// Run executes a command and returns its stdout. Tests replace it;
	// nil runs the command with os/exec.
	Run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Load runs the interpreter and indexes the distributions it reports.
func (p Interpreter) Load(ctx context.Context) (*Index, error) {
	python := p.Python
	if python == "" {
		python = DefaultPython
	}
	run := p.Run
	if run == nil {
		run = runCommand
	}

	out, err := run(ctx, python, "-m", "pip", "--disable-pip-version-check", "inspect", "--local")
	if err != nil {
		return nil, fmt.Errorf("%s -m pip inspect: %w", python, err)
	}
	return ParseInspectReport(bytes.NewReader(out))
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
