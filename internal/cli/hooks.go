package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amastis/pyinstaller-excluder/pkg/observability"
)

// logHooks reports pipeline and source events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.SourceHooks   = logHooks{}
)

func (h logHooks) OnResolveStart(_ context.Context, roots int) {
	h.logger.Debug("resolve started", "roots", roots)
}

func (h logHooks) OnResolveComplete(_ context.Context, packages int, duration time.Duration, err error) {
	h.logger.Debug("resolve finished", "packages", packages, "duration", duration, "err", err)
}

func (h logHooks) OnPatchComplete(_ context.Context, target string, excluded int, written bool, err error) {
	h.logger.Debug("patch finished", "file", target, "excluded", excluded, "written", written, "err", err)
}

func (h logHooks) OnSourceLoad(_ context.Context, source string, packages int, duration time.Duration, err error) {
	h.logger.Debug("source loaded", "source", source, "packages", packages, "duration", duration, "err", err)
}

// registerDebugHooks routes observability events to l when it logs at
// debug level.
func registerDebugHooks(l *log.Logger) bool {
	if l == nil || l.GetLevel() > log.DebugLevel {
		return false
	}
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetSourceHooks(h)
	return true
}
