//go:build debug

package buildmode

// Debug is true in debug builds.
const Debug = true
