// Package env holds build-time metadata injected via -ldflags.
package env

// These are overridden at build time with -ldflags
// "-X github.com/ostafen/vfatfs/internal/env.Version=...".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
