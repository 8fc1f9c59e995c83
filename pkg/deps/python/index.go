package python

import (
	"context"
	"slices"

	"github.com/amastis/pyinstaller-excluder/pkg/deps"
)

// Distribution is one installed Python distribution.
type Distribution struct {
	Name     string   // Name as recorded in its metadata
	Version  string   // Installed version (may be empty)
	Requires []string // Unconditional direct dependency names
}

// Index is a [deps.MetadataSource] over a fixed set of distributions,
// looked up by canonical name.
//
// Index is safe for concurrent reads after construction.
type Index struct {
	dists map[string]Distribution
	order []string
}

// NewIndex indexes dists by canonical name. When two distributions normalize
// to the same name the first one wins, matching the import system's
// first-on-path rule. Distributions without a name are ignored.
func NewIndex(dists []Distribution) *Index {
	idx := &Index{dists: make(map[string]Distribution, len(dists))}
	for _, d := range dists {
		key := deps.Normalize(d.Name)
		if key == "" {
			continue
		}
		if _, dup := idx.dists[key]; dup {
			continue
		}
		idx.dists[key] = d
		idx.order = append(idx.order, key)
	}
	slices.Sort(idx.order)
	return idx
}

// DependenciesOf implements [deps.MetadataSource].
func (i *Index) DependenciesOf(_ context.Context, name string) ([]string, error) {
	d, ok := i.dists[deps.Normalize(name)]
	if !ok {
		return nil, deps.NotFound(name)
	}
	return slices.Clone(d.Requires), nil
}

// AllKnownNames implements [deps.MetadataSource]. Names keep the spelling
// recorded in their metadata and are ordered by canonical name.
func (i *Index) AllKnownNames(context.Context) ([]string, error) {
	names := make([]string, len(i.order))
	for n, key := range i.order {
		names[n] = i.dists[key].Name
	}
	return names, nil
}

// Lookup returns the distribution recorded for name, in any spelling.
func (i *Index) Lookup(name string) (Distribution, bool) {
	d, ok := i.dists[deps.Normalize(name)]
	return d, ok
}

// Len returns the number of indexed distributions.
func (i *Index) Len() int { return len(i.order) }

var _ deps.MetadataSource = (*Index)(nil)
