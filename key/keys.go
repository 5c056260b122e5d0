// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Instance - these keys locate the PixelTube instance the plugin talks to.
const (
	Instance   = "pixeltube.instance"
	CDN        = "pixeltube.cdn"
	PlatformID = "pixeltube.platform_id"
)

// Listing API - these keys shape the paginated REST feeds.
const (
	APIPageSize = "api.page_size"
)

// Transport - these keys configure the outbound HTTP collaborator.
const (
	HTTPTimeout   = "http.timeout"
	HTTPUserAgent = "http.user_agent"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern terminal output.
const (
	CliColored  = "cli.colored"
	CliWrapBios = "cli.wrap_bios"
)
