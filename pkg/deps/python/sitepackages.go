package python

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

// LoadSitePackages indexes the distributions installed in the given
// site-packages directories, searched in order. It reads
// "*.dist-info/METADATA" for wheel installs and "*.egg-info/PKG-INFO"
// (plus requires.txt) for legacy installs.
func LoadSitePackages(dirs ...string) (*Index, error) {
	var dists []Distribution
	for _, dir := range dirs {
		found, err := scanSitePackages(dir)
		if err != nil {
			return nil, err
		}
		dists = append(dists, found...)
	}
	return NewIndex(dists), nil
}

func scanSitePackages(dir string) ([]Distribution, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "site-packages directory %s", dir)
	}
	if err != nil {
		return nil, err
	}

	var dists []Distribution
	for _, e := range entries {
		name := e.Name()
		path := filepath.Join(dir, name)

		var (
			d   Distribution
			ok  bool
			err error
		)
		switch {
		case strings.HasSuffix(name, ".dist-info"):
			d, ok, err = readDistInfo(path)
		case strings.HasSuffix(name, ".egg-info"):
			d, ok, err = readEggInfo(path, e.IsDir())
		default:
			continue
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidMetadata, err, "read %s", path)
		}
		if ok {
			dists = append(dists, d)
		}
	}

	slices.SortStableFunc(dists, func(a, b Distribution) int { return strings.Compare(a.Name, b.Name) })
	return dists, nil
}

// readDistInfo parses a wheel-style metadata directory. A directory without
// METADATA is an incomplete install and is skipped.
func readDistInfo(dir string) (Distribution, bool, error) {
	f, err := os.Open(filepath.Join(dir, "METADATA"))
	if os.IsNotExist(err) {
		return Distribution{}, false, nil
	}
	if err != nil {
		return Distribution{}, false, err
	}
	defer f.Close()

	d, err := parseCoreMetadata(f)
	if err != nil {
		return Distribution{}, false, err
	}
	if d.Name == "" {
		d.Name = nameFromDir(dir)
	}
	return d, true, nil
}

// readEggInfo parses egg-info metadata, which is either a directory holding
// PKG-INFO and requires.txt or a single PKG-INFO style file.
func readEggInfo(path string, isDir bool) (Distribution, bool, error) {
	info := path
	if isDir {
		info = filepath.Join(path, "PKG-INFO")
	}
	f, err := os.Open(info)
	if os.IsNotExist(err) {
		return Distribution{}, false, nil
	}
	if err != nil {
		return Distribution{}, false, err
	}
	defer f.Close()

	d, err := parseCoreMetadata(f)
	if err != nil {
		return Distribution{}, false, err
	}
	if d.Name == "" {
		d.Name = nameFromDir(path)
	}

	if isDir && len(d.Requires) == 0 {
		req, err := os.Open(filepath.Join(path, "requires.txt"))
		switch {
		case err == nil:
			defer req.Close()
			if d.Requires, err = parseEggRequires(req); err != nil {
				return Distribution{}, false, fmt.Errorf("requires.txt: %w", err)
			}
		case !os.IsNotExist(err):
			return Distribution{}, false, err
		}
	}
	return d, true, nil
}

// nameFromDir derives a name from "name-version.dist-info" style entries.
func nameFromDir(path string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".dist-info"), ".egg-info")
	name, _, _ := strings.Cut(base, "-")
	return name
}
