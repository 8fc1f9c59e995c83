// Package pipeline runs the excluder end to end: it reads the project's
// requirement roots, resolves their dependency closure against a metadata
// source, computes the installed packages outside that closure, and writes
// them into the project's spec file.
//
// # Stages
//
//  1. Requirements: locate and parse requirements.txt
//  2. Resolve: walk the dependency closure of the roots
//  3. Exclude: installed packages minus the closure (minus Keep)
//  4. Target: pick the spec file to patch
//  5. Patch: merge the exclusions into the spec file, or diff them for a dry run
//
// Resolution errors abort the run before any file is touched.
//
// # Usage
//
//	runner := pipeline.NewRunner(source, logger)
//	result, err := runner.Run(ctx, pipeline.Options{
//	    RequirementsPath: "./requirements.txt",
//	})
//	if err != nil {
//	    return err
//	}
//	if result.TargetErr != nil {
//	    fmt.Println(specfile.FormatExcludes(result.Exclusions))
//	}
package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/amastis/pyinstaller-excluder/pkg/deps"
	"github.com/amastis/pyinstaller-excluder/pkg/deps/python"
	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
	"github.com/amastis/pyinstaller-excluder/pkg/specfile"
)

// RequirementsFile is the file looked up when the requirements path is a
// directory.
const RequirementsFile = "requirements.txt"

// Options configures a pipeline run.
type Options struct {
	// RequirementsPath is requirements.txt or the directory containing it.
	RequirementsPath string

	// SpecPath names the spec file to patch. When empty the single spec file
	// next to the requirements is used.
	SpecPath string

	// Keep lists packages that are never excluded.
	Keep []string

	// AllowMissing tolerates transitive dependencies that are not installed.
	AllowMissing bool

	// DryRun computes the change to the spec file without writing it.
	DryRun bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RequirementsPath is the requirements file that was read.
	RequirementsPath string

	// ProjectDir is the directory searched for spec files.
	ProjectDir string

	Requirements []python.Requirement
	Roots        []string
	Closure      *deps.Closure
	Installed    deps.NameSet

	// Exclusions is the sorted list written to the spec file.
	Exclusions []string

	// Missing lists required packages that are not installed.
	Missing []string

	// Target is the spec file that was (or would be) patched.
	Target string

	// Discovered is true when Target was found rather than given.
	Discovered bool

	// Written reports whether Target was rewritten.
	Written bool

	// Diff is the change to Target; set on dry runs and real writes.
	Diff string

	// TargetErr explains why no spec file was patched. The run still
	// succeeds so the caller can report Exclusions instead.
	TargetErr error

	Stats Stats
}

// Stats contains pipeline timing and size information.
type Stats struct {
	Packages    int
	Edges       int
	ResolveTime time.Duration
	PatchTime   time.Duration
}

// Patched reports whether the run selected a spec file.
func (r *Result) Patched() bool {
	return r.TargetErr == nil && r.Target != ""
}

// LocateRequirements resolves path to a requirements file and the project
// directory containing it. A directory path is joined with RequirementsFile.
func LocateRequirements(path string) (file, dir string, err error) {
	if path == "" {
		path = "."
	}
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", errs.Wrap(errs.ErrCodeFileNotFound, err, "requirements not found at %s", path)
		}
		return "", "", err
	}
	if !fi.IsDir() {
		return path, filepath.Dir(path), nil
	}

	file = filepath.Join(path, RequirementsFile)
	fi, err = os.Stat(file)
	if err != nil || fi.IsDir() {
		return "", "", errs.New(errs.ErrCodeFileNotFound, "%s was not found in %s", RequirementsFile, path)
	}
	return file, path, nil
}

// SelectTarget chooses the spec file to patch. An explicit path wins;
// otherwise dir must contain exactly one spec file.
func SelectTarget(explicit, dir string) (path string, discovered bool, err error) {
	if explicit != "" {
		return explicit, false, nil
	}
	found, err := specfile.Discover(dir)
	if err != nil {
		return "", false, err
	}
	switch len(found) {
	case 1:
		return found[0], true, nil
	case 0:
		return "", false, errs.New(errs.ErrCodeAmbiguousTarget, "no %s file found in %s", specfile.Extension, dir)
	default:
		return "", false, errs.New(errs.ErrCodeAmbiguousTarget, "found %d %s files in %s; pass one explicitly", len(found), specfile.Extension, dir)
	}
}
