// Package config defines the settings used by the daylight binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Missing optional values are filled with defaults during validation.
package config
