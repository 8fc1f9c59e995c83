package deps

import (
	"context"
	"maps"
	"regexp"
	"slices"
	"strings"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

var separatorRE = regexp.MustCompile(`[-_.]+`)

// Normalize converts a distribution name to its canonical form: trimmed,
// lowercased, with runs of '-', '_' and '.' collapsed to a single '-'
// (PEP 503). "Typing_Extensions" and "typing-extensions" normalize equally.
func Normalize(name string) string {
	return separatorRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// NameSet is a set of package names compared in canonical form. Each member
// keeps the lowercased spelling it was first added with, which is what
// [NameSet.Names] reports, so "unused_pkg" stays "unused_pkg" in output while
// still matching "Unused-Pkg".
//
// The zero value is not usable; create one with [NewNameSet] or make.
type NameSet map[string]string

// NewNameSet returns a set holding every name. Empty names are ignored.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	s.Add(names...)
	return s
}

// Add inserts names and reports how many were new.
func (s NameSet) Add(names ...string) int {
	before := len(s)
	for _, n := range names {
		key := Normalize(n)
		if key == "" {
			continue
		}
		if _, ok := s[key]; !ok {
			s[key] = strings.ToLower(strings.TrimSpace(n))
		}
	}
	return len(s) - before
}

// Has reports whether name, in any spelling, is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[Normalize(name)]
	return ok
}

// Get returns the spelling recorded for name.
func (s NameSet) Get(name string) (string, bool) {
	v, ok := s[Normalize(name)]
	return v, ok
}

// Len returns the number of names in the set.
func (s NameSet) Len() int { return len(s) }

// Names returns the recorded spellings ordered by canonical name.
func (s NameSet) Names() []string {
	return s.collect(func(string) bool { return true })
}

// Difference returns the members of s that are not in other, in the same
// order as [NameSet.Names].
func (s NameSet) Difference(other NameSet) []string {
	return s.collect(func(key string) bool {
		_, ok := other[key]
		return !ok
	})
}

func (s NameSet) collect(keep func(key string) bool) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		if keep(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = s[k]
	}
	return out
}

// Clone returns an independent copy of s.
func (s NameSet) Clone() NameSet {
	return maps.Clone(s)
}

// MetadataSource answers dependency questions about an installed environment.
//
// Implementations must accept names in any casing or separator spelling and
// report unknown packages with an ErrCodePackageNotFound error. The source is
// treated as read-only while a resolution is in progress.
type MetadataSource interface {
	// DependenciesOf returns the direct dependency names declared by name.
	DependenciesOf(ctx context.Context, name string) ([]string, error)
	// AllKnownNames returns every installed package name.
	AllKnownNames(ctx context.Context) ([]string, error)
}

// StaticSource is an in-memory [MetadataSource] mapping a package name to
// its direct dependencies. Keys may use any spelling.
type StaticSource map[string][]string

// DependenciesOf implements [MetadataSource].
func (s StaticSource) DependenciesOf(_ context.Context, name string) ([]string, error) {
	if v, ok := s[name]; ok {
		return slices.Clone(v), nil
	}
	want := Normalize(name)
	if v, ok := s[want]; ok {
		return slices.Clone(v), nil
	}
	for k, v := range s {
		if Normalize(k) == want {
			return slices.Clone(v), nil
		}
	}
	return nil, NotFound(name)
}

// AllKnownNames implements [MetadataSource].
func (s StaticSource) AllKnownNames(context.Context) ([]string, error) {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	slices.Sort(names)
	return names, nil
}

// NotFound returns the error sources report for an unknown package.
func NotFound(name string) error {
	return errs.New(errs.ErrCodePackageNotFound, "package %q is not installed", name)
}

var _ MetadataSource = StaticSource(nil)
