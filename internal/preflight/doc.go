// Package preflight provides readiness checks for the external tools and
// filesystem paths karaoke depends on.
//
// These checks run in two contexts:
//   - The daemon reports CheckSystemDeps through /api/status.
//   - The CLI "karaoke doctor" command prints RunAll and CheckSystemDeps.
//
// Engine-specific tools are required only for the configured default engine;
// the other engine's tools are reported as optional.
package preflight
