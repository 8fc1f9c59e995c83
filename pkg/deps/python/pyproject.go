package python

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

// ProjectSettings holds the [tool.excluder] table of a project's
// pyproject.toml. Zero values mean "not configured".
type ProjectSettings struct {
	Spec         string   `toml:"spec"`          // Target .spec file, relative to the project
	Keep         []string `toml:"keep"`          // Packages never excluded
	AllowMissing bool     `toml:"allow-missing"` // Tolerate uninstalled transitive deps
	Python       string   `toml:"python"`        // Interpreter to inspect
	SitePackages []string `toml:"site-packages"` // Directories to scan instead of the interpreter
	PoetryLock   string   `toml:"poetry-lock"`   // Lock file to read instead of the interpreter
}

// ReadProjectSettings loads [tool.excluder] from dir/pyproject.toml.
// A project without pyproject.toml, or without the table, yields zero
// settings. Relative paths are resolved against dir.
func ReadProjectSettings(dir string) (ProjectSettings, error) {
	path := filepath.Join(dir, "pyproject.toml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ProjectSettings{}, nil
	}
	if err != nil {
		return ProjectSettings{}, err
	}

	var pyproject struct {
		Tool struct {
			Excluder ProjectSettings `toml:"excluder"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return ProjectSettings{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode %s", path)
	}

	s := pyproject.Tool.Excluder
	s.Spec = resolvePath(dir, s.Spec)
	s.PoetryLock = resolvePath(dir, s.PoetryLock)
	for i, p := range s.SitePackages {
		s.SitePackages[i] = resolvePath(dir, p)
	}
	return s, nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
