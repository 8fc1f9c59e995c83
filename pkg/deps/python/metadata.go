package python

import (
	"bufio"
	"io"
	"net/textproto"
	"regexp"
	"strings"

	"github.com/amastis/pyinstaller-excluder/pkg/deps"
)

var (
	depRE    = regexp.MustCompile(`^\s*([A-Za-z0-9][-A-Za-z0-9._]*)`)
	markerRE = regexp.MustCompile(`;\s*(.+)`)
	extraRE  = regexp.MustCompile(`\bextra\b`)
)

// requirementName extracts the distribution name from a PEP 508 requirement
// such as "urllib3 (<3,>=1.21.1)" or `PySocks>=1.5.6; extra == "socks"`.
// Requirements that only apply to an optional extra are reported as not ok,
// since installing the parent does not install them.
func requirementName(spec string) (string, bool) {
	if m := markerRE.FindStringSubmatch(spec); len(m) > 1 && extraRE.MatchString(m[1]) {
		return "", false
	}
	m := depRE.FindStringSubmatch(spec)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// requirementNames applies requirementName to specs and drops duplicates,
// keeping first-seen order.
func requirementNames(specs []string) []string {
	seen := make(map[string]bool, len(specs))
	var names []string
	for _, spec := range specs {
		name, ok := requirementName(spec)
		if !ok {
			continue
		}
		if key := deps.Normalize(name); !seen[key] {
			seen[key] = true
			names = append(names, name)
		}
	}
	return names
}

// parseCoreMetadata reads the header block of a METADATA or PKG-INFO file
// (core metadata, RFC 822 style) and returns the distribution it describes.
func parseCoreMetadata(r io.Reader) (Distribution, error) {
	hdr, err := textproto.NewReader(bufio.NewReader(r)).ReadMIMEHeader()
	if err != nil && err != io.EOF {
		return Distribution{}, err
	}
	return Distribution{
		Name:     strings.TrimSpace(hdr.Get("Name")),
		Version:  strings.TrimSpace(hdr.Get("Version")),
		Requires: requirementNames(hdr.Values("Requires-Dist")),
	}, nil
}

// parseEggRequires reads an egg-info requires.txt. Only the unnamed leading
// section lists unconditional requirements; "[extra]" and "[:marker]"
// sections follow it.
func parseEggRequires(r io.Reader) ([]string, error) {
	var specs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			break
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		specs = append(specs, line)
	}
	return requirementNames(specs), scanner.Err()
}
