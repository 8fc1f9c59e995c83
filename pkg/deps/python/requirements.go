package python

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amastis/pyinstaller-excluder/pkg/deps"
	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

// nameDelimiters end the name portion of a requirement specifier: version
// operators, environment markers, extras, direct references and whitespace.
const nameDelimiters = "=<>!~;[@ \t("

// Requirement is one root package named by a requirements listing.
type Requirement struct {
	Name string // Lowercased package name
	Raw  string // Specifier as written, without comments
	Line int    // 1-based line number
}

// ReadRequirements parses the requirements file at path.
// A missing file is reported with ErrCodeFileNotFound.
func ReadRequirements(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "requirements listing %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reqs, err := ParseRequirements(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return reqs, nil
}

// ParseRequirements reads one specifier per line and keeps the bare,
// lowercased package name: everything before the first version operator,
// marker or extras bracket.
//
// Blank lines, comments, pip options (-r, -e, --index-url, ...) and bare
// URLs are skipped. An entry without a usable name, or naming a package that
// was already listed, fails with ErrCodeInvalidRequirement.
func ParseRequirements(r io.Reader) ([]Requirement, error) {
	var result []Requirement
	seen := make(map[string]int)

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := stripComment(scanner.Text())
		if line == "" || line[0] == '-' {
			continue
		}
		if strings.Contains(line, "://") && !strings.Contains(line, "@") {
			continue
		}
		if strings.HasPrefix(line, "git+") {
			continue
		}

		raw := line
		if i := strings.IndexAny(line, nameDelimiters); i >= 0 {
			line = line[:i]
		}
		if err := errs.ValidatePackageName(line); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidRequirement, err, "line %d: %q", n, raw)
		}

		name := strings.ToLower(line)
		if first, dup := seen[deps.Normalize(name)]; dup {
			return nil, errs.New(errs.ErrCodeInvalidRequirement,
				"line %d: %s is already required on line %d", n, name, first)
		}
		seen[deps.Normalize(name)] = n
		result = append(result, Requirement{Name: name, Raw: raw, Line: n})
	}

	return result, scanner.Err()
}

// Names returns the package names of reqs in listing order.
func Names(reqs []Requirement) []string {
	names := make([]string, len(reqs))
	for i, r := range reqs {
		names[i] = r.Name
	}
	return names
}

// stripComment removes a trailing "# ..." comment and surrounding space.
// A '#' only starts a comment at the beginning of a line or after whitespace,
// so URL fragments like "pkg @ https://host/x.zip#sha256=..." survive.
func stripComment(line string) string {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return ""
	}
	if i := strings.Index(line, " #"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "\t#"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
