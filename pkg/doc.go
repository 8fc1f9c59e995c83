// Package pkg holds the libraries behind the excluder command.
//
//   - [deps]: package names, the metadata source interface, the closure
//     resolver and the exclusion set
//   - [deps/python]: requirements.txt parsing and installed-package metadata
//     (site-packages, pip inspect, interpreter, poetry.lock, pyproject.toml)
//   - [specfile]: reading, patching and atomically rewriting PyInstaller spec files
//   - [pipeline]: requirements → closure → exclusions → spec file
//   - [render]: Graphviz drawing of a closure
//   - [errors]: coded errors shared by all packages
//   - [observability]: optional instrumentation hooks
//   - [buildinfo]: ldflags version strings
//
// Data flow:
//
//	requirements.txt ──► roots ──► Resolver ◄── MetadataSource
//	                                  │
//	                               Closure ──► installed − closure ──► spec file
package pkg
