// Package storage owns the on-disk layout under the configured storage root:
// uploads, outputs, and scratch space.
//
// Open creates every directory before returning, so holders of a Paths value
// can write without checking. Nothing here is global; callers pass Paths
// explicitly.
package storage
