package version

// Populated at build time via -ldflags:
//
//	-X .../internal/version.Version=v0.3.0
//	-X .../internal/version.Commit=$(git rev-parse --short HEAD)
//	-X .../internal/version.BuildDate=$(date -u +%Y-%m-%d)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
