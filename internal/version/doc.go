// Package version exposes build metadata of the daylight binaries.
//
// Version, Commit and BuildTime are injected at build time via ldflags and
// default to local-build values. Every binary gets a `version` subcommand.
package version
