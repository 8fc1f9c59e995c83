// Package python reads Python project and environment metadata: the root
// names of a requirements listing and the installed distributions that serve
// as a [deps.MetadataSource].
//
// Installed metadata can come from several places, all producing an [Index]:
//
//   - [Interpreter]: runs `python -m pip inspect` against a live environment
//   - [LoadSitePackages]: scans *.dist-info and *.egg-info directories
//   - [LoadInspectReport]: reads a saved `pip inspect` report
//   - [LoadPoetryLock]: reads the packages pinned by poetry.lock
//
// Requirements that only apply to optional extras are dropped everywhere,
// because installing a package does not install its extras.
package python
