package version

// Overridden at build time via -ldflags; the defaults cover local runs.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)
