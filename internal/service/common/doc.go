// Package common holds helpers shared by the daylight binaries.
//
// It provides a gRPC client wrapper for the control API with call timeouts
// and caller identity, and detects the current system actor (hostname/username)
// for audit purposes.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
