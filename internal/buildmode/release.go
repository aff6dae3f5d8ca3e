//go:build !debug

// Package buildmode exposes the process-wide build flavour. Build with
// -tags debug for a debug build.
package buildmode

// Debug is true in debug builds.
const Debug = false
