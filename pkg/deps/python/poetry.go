package python

import (
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

// LoadPoetryLock indexes the packages pinned by a poetry.lock file. The lock
// describes the complete environment Poetry installs, so it can stand in for
// an inspected interpreter when building from a locked project.
//
// Dependencies marked optional are only installed through extras and are
// left out, like extra-only Requires-Dist entries.
func LoadPoetryLock(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "poetry lock %s", path)
	}
	if err != nil {
		return nil, err
	}

	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidMetadata, err, "decode %s", path)
	}

	dists := make([]Distribution, 0, len(lock.Packages))
	for _, pkg := range lock.Packages {
		dists = append(dists, Distribution{
			Name:     pkg.Name,
			Version:  pkg.Version,
			Requires: lockDependencies(pkg.Dependencies),
		})
	}
	return NewIndex(dists), nil
}

type lockFile struct {
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name         string         `toml:"name"`
	Version      string         `toml:"version"`
	Dependencies map[string]any `toml:"dependencies"`
}

// lockDependencies returns the non-optional dependency names in sorted order.
// A constraint is either a version string, a table, or an array of tables
// (one per marker); an array counts as optional only if every entry is.
func lockDependencies(dependencies map[string]any) []string {
	names := make([]string, 0, len(dependencies))
	for name, constraint := range dependencies {
		if !isOptional(constraint) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func isOptional(constraint any) bool {
	switch c := constraint.(type) {
	case map[string]any:
		opt, _ := c["optional"].(bool)
		return opt
	case []map[string]any:
		for _, alt := range c {
			if !isOptional(alt) {
				return false
			}
		}
		return len(c) > 0
	case []any:
		for _, alt := range c {
			if !isOptional(alt) {
				return false
			}
		}
		return len(c) > 0
	default:
		return false
	}
}
