// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Pixeltube is the canonical application identifier used for filesystem paths and CLI branding.
	Pixeltube = "pixeltube"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is the default HTTP User-Agent string sent to PixelTube instances.
	UserAgent = "pixeltube-cli/" + Version + " (+https://github.com/pixeltube-cli/pixeltube)"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
