package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amastis/pyinstaller-excluder/pkg/deps"
	"github.com/amastis/pyinstaller-excluder/pkg/deps/python"
	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
	"github.com/amastis/pyinstaller-excluder/pkg/observability"
	"github.com/amastis/pyinstaller-excluder/pkg/specfile"
)

// Runner executes the pipeline against one metadata source.
//
// The Runner holds no per-run state; the same Runner may serve several runs
// with different options.
type Runner struct {
	Source deps.MetadataSource
	Logger *log.Logger
}

// NewRunner creates a runner reading package metadata from source.
// If logger is nil, log output is discarded.
func NewRunner(source deps.MetadataSource, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Source: source, Logger: logger}
}

// Run executes every stage and returns the collected result. Failing to
// pick a spec file is not an error; it is recorded in Result.TargetErr.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	result, err := r.Analyze(ctx, opts)
	if err != nil {
		return nil, err
	}

	target, discovered, err := SelectTarget(opts.SpecPath, result.ProjectDir)
	if err != nil {
		if !errs.Is(err, errs.ErrCodeAmbiguousTarget) {
			return nil, fmt.Errorf("select spec file: %w", err)
		}
		r.Logger.Warn("no spec file selected", "reason", errs.UserMessage(err))
		result.TargetErr = err
		return result, nil
	}
	result.Target = target
	result.Discovered = discovered

	start := time.Now()
	err = r.patch(result, opts.DryRun)
	observability.Pipeline().OnPatchComplete(ctx, target, len(result.Exclusions), result.Written, err)
	if err != nil {
		return nil, err
	}
	result.Stats.PatchTime = time.Since(start)

	r.Logger.Info("patched spec file",
		"file", target,
		"written", result.Written,
		"dry_run", opts.DryRun,
		"duration", result.Stats.PatchTime)

	return result, nil
}

// Analyze runs the read-only stages: requirements, resolution and the
// exclusion set. It never touches a spec file.
func (r *Runner) Analyze(ctx context.Context, opts Options) (*Result, error) {
	if r.Source == nil {
		return nil, errs.New(errs.ErrCodeInternal, "pipeline has no metadata source")
	}
	file, dir, err := LocateRequirements(opts.RequirementsPath)
	if err != nil {
		return nil, err
	}
	result := &Result{RequirementsPath: file, ProjectDir: dir}

	reqs, err := python.ReadRequirements(file)
	if err != nil {
		return nil, err
	}
	result.Requirements = reqs
	result.Roots = python.Names(reqs)
	r.Logger.Debug("read requirements", "file", file, "roots", len(result.Roots))

	start := time.Now()
	resolver := deps.NewResolver(r.Source, deps.Options{
		AllowMissing: opts.AllowMissing,
		Logger:       r.Logger.Warnf,
	})
	observability.Pipeline().OnResolveStart(ctx, len(result.Roots))
	closure, err := resolver.Resolve(ctx, result.Roots)
	result.Stats.ResolveTime = time.Since(start)
	if err != nil {
		observability.Pipeline().OnResolveComplete(ctx, 0, result.Stats.ResolveTime, err)
		return nil, err
	}
	observability.Pipeline().OnResolveComplete(ctx, closure.Len(), result.Stats.ResolveTime, nil)
	result.Closure = closure
	result.Stats.Packages = closure.Len()
	result.Stats.Edges = closure.EdgeCount()

	r.Logger.Info("resolved dependencies",
		"roots", len(result.Roots),
		"packages", result.Stats.Packages,
		"edges", result.Stats.Edges,
		"duration", result.Stats.ResolveTime)

	known, err := r.Source.AllKnownNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list installed packages: %w", err)
	}
	result.Installed = deps.NewNameSet(known...)

	required := closure.Set()
	result.Missing = deps.MissingFromInstalled(result.Installed, required)
	for _, name := range result.Missing {
		r.Logger.Warn("required package is not installed", "package", name)
	}

	required.Add(opts.Keep...)
	result.Exclusions = deps.ComputeExclusions(result.Installed, required)

	r.Logger.Info("computed exclusions",
		"installed", result.Installed.Len(),
		"excluded", len(result.Exclusions),
		"kept", len(opts.Keep))

	return result, nil
}

func (r *Runner) patch(result *Result, dryRun bool) error {
	name := filepath.Base(result.Target)
	if dryRun {
		before, err := specfile.ReadDocument(result.Target)
		if err != nil {
			return err
		}
		after, err := specfile.ApplyExcludes(before, result.Exclusions)
		if err != nil {
			return errs.Wrap(errs.GetCode(err), err, "patch %s", result.Target)
		}
		result.Diff = specfile.Diff(name, before, after)
		return nil
	}

	before, after, err := specfile.Patch(result.Target, result.Exclusions)
	if err != nil {
		return err
	}
	result.Diff = specfile.Diff(name, before, after)
	result.Written = result.Diff != ""
	return nil
}
