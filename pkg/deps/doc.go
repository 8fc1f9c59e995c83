// Package deps computes which installed Python distributions a project
// actually needs.
//
// # Overview
//
// Given the root names listed in a requirements file and a [MetadataSource]
// describing the installed environment, the package answers two questions:
//
//   - Which packages are reachable from the roots? ([Resolver.Resolve])
//   - Which installed packages are not? ([ComputeExclusions])
//
// The second answer is the exclusion list a PyInstaller spec file can use to
// keep unused packages out of a frozen build.
//
// # Names
//
// Distribution names are compared in their PEP 503 canonical form, see
// [Normalize]. Normalization happens where names enter the system: the
// requirements parser, the metadata source index and the resolver's visited
// set. Sources remain free to report names in their original spelling.
//
// # Resolving
//
//	source := deps.StaticSource{
//	    "requests": {"urllib3", "six"},
//	    "click":    nil,
//	}
//	closure, err := deps.NewResolver(source, deps.Options{}).Resolve(ctx, []string{"requests", "click"})
//
// The resolver walks the graph with an explicit work stack, so cyclic and
// very deep graphs are handled without recursion. A name missing from the
// source aborts the walk with an ErrCodePackageNotFound error unless
// [Options.AllowMissing] is set and the name is not a root.
//
// # Excluding
//
//	installed, _ := source.AllKnownNames(ctx)
//	excludes := deps.ComputeExclusions(deps.NewNameSet(installed...), closure.Set())
//
// The result is sorted so repeated runs produce identical spec files.
package deps
