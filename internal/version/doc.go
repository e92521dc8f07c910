// Package version exposes build metadata of machine-timeline.
//
// Version, Commit and BuildTime are injected through -ldflags at build time.
package version
