package deps

import (
	"context"
	"slices"
	"strings"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

// Options configures dependency resolution behavior.
type Options struct {
	// AllowMissing records transitive dependencies that the source does not
	// know about instead of failing. Missing roots always fail.
	AllowMissing bool
	// Logger receives progress and warning messages (optional).
	Logger func(string, ...any)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Resolver computes transitive dependency closures over a [MetadataSource].
type Resolver struct {
	source MetadataSource
	opts   Options
}

// NewResolver creates a Resolver reading package metadata from source.
func NewResolver(source MetadataSource, opts Options) *Resolver {
	return &Resolver{source: source, opts: opts.WithDefaults()}
}

// Resolve returns every package reachable from roots by following declared
// dependencies zero or more times. Every root is part of the result.
//
// Each package is expanded exactly once, so cycles (a requires b, b requires a)
// and shared sub-dependencies are walked a single time. If a root or any
// discovered dependency is unknown to the source, Resolve returns an
// ErrCodePackageNotFound error naming the package and the chain that reached
// it, and no closure.
func (r *Resolver) Resolve(ctx context.Context, roots []string) (*Closure, error) {
	c := &Closure{
		members: make(NameSet),
		roots:   NewNameSet(roots...),
		edges:   make(map[string][]string),
		missing: make(NameSet),
	}
	parent := make(map[string]string)

	stack := make([]string, 0, len(roots))
	for _, root := range roots {
		if Normalize(root) == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "empty root package name")
		}
		if c.members.Add(root) == 0 {
			continue
		}
		name, _ := c.members.Get(root)
		stack = append(stack, name)
	}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		deps, err := r.source.DependenciesOf(ctx, name)
		if err != nil {
			if !errs.Is(err, errs.ErrCodePackageNotFound) {
				return nil, err
			}
			if r.opts.AllowMissing && !c.roots.Has(name) {
				r.opts.Logger("dependency %s is not installed (required by %s)", name, parent[name])
				c.missing.Add(name)
				continue
			}
			return nil, errs.Wrap(errs.ErrCodePackageNotFound, err, "resolve %s", chain(parent, name))
		}

		var children []string
		for _, dep := range NewNameSet(deps...).Names() {
			if known, seen := c.members.Get(dep); seen {
				children = append(children, known)
				continue
			}
			c.members.Add(dep)
			parent[dep] = name
			stack = append(stack, dep)
			children = append(children, dep)
		}
		c.edges[name] = children
	}

	return c, nil
}

// chain renders the discovery path from a root to name, e.g. "a -> b -> c".
func chain(parent map[string]string, name string) string {
	path := []string{name}
	for p, ok := parent[name]; ok; p, ok = parent[p] {
		path = append(path, p)
	}
	slices.Reverse(path)
	return strings.Join(path, " -> ")
}

// Closure is the result of a resolution: the set of required packages and
// the dependency edges discovered while walking them.
type Closure struct {
	members NameSet
	roots   NameSet
	edges   map[string][]string
	missing NameSet
}

// Has reports whether name is required.
func (c *Closure) Has(name string) bool { return c.members.Has(name) }

// Len returns the number of required packages.
func (c *Closure) Len() int { return c.members.Len() - c.missing.Len() }

// Names returns the required packages in lexicographic order, excluding
// dependencies the source did not know about (see [Closure.Missing]).
func (c *Closure) Names() []string { return c.members.Difference(c.missing) }

// Set returns the required packages as a set, including missing ones so
// they are never reported as unused.
func (c *Closure) Set() NameSet { return c.members.Clone() }

// Roots returns the root packages in lexicographic order.
func (c *Closure) Roots() []string { return c.roots.Names() }

// IsRoot reports whether name was one of the roots.
func (c *Closure) IsRoot(name string) bool { return c.roots.Has(name) }

// Missing returns dependencies skipped because the source did not know
// them. It is empty unless [Options.AllowMissing] was set.
func (c *Closure) Missing() []string { return c.missing.Names() }

// Edges returns the direct dependencies of every expanded package, with
// children ordered by canonical name. The map is a copy.
func (c *Closure) Edges() map[string][]string {
	out := make(map[string][]string, len(c.edges))
	for k, v := range c.edges {
		out[k] = slices.Clone(v)
	}
	return out
}

// EdgeCount returns the number of dependency edges walked.
func (c *Closure) EdgeCount() int {
	n := 0
	for _, v := range c.edges {
		n += len(v)
	}
	return n
}
