// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: the pipeline and the CLI emit events through
// the registered hooks, which default to no-ops. A consumer registers its
// own implementation once at startup.
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnResolveStart(ctx, len(roots))
//	// ... resolve ...
//	observability.Pipeline().OnResolveComplete(ctx, closure.Len(), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the exclude pipeline.
type PipelineHooks interface {
	// OnResolveStart is called before the dependency closure is walked.
	OnResolveStart(ctx context.Context, roots int)
	// OnResolveComplete reports the closure size, or the error that aborted it.
	OnResolveComplete(ctx context.Context, packages int, duration time.Duration, err error)

	// OnPatchComplete reports the outcome of patching target.
	OnPatchComplete(ctx context.Context, target string, excluded int, written bool, err error)
}

// SourceHooks receives events from metadata sources.
type SourceHooks interface {
	// OnSourceLoad reports how many installed packages a source yielded.
	OnSourceLoad(ctx context.Context, source string, packages int, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnResolveStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnResolveComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnPatchComplete(context.Context, string, int, bool, error)    {}

// NoopSourceHooks is a no-op implementation of SourceHooks.
type NoopSourceHooks struct{}

func (NoopSourceHooks) OnSourceLoad(context.Context, string, int, time.Duration, error) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	sourceHooks   SourceHooks   = NoopSourceHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetSourceHooks registers custom source hooks. Nil is ignored.
func SetSourceHooks(h SourceHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sourceHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Source returns the registered source hooks.
func Source() SourceHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sourceHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	sourceHooks = NoopSourceHooks{}
}
