package constant

// PluginLogo is the avatar used when an actor declares no icon.
const PluginLogo = "https://raw.githubusercontent.com/pixeltube-cli/pixeltube/main/assets/logo.png"

// ActivityJSON is the media type requested from federation endpoints.
const ActivityJSON = "application/activity+json"

// MirrorMarker appears in the actor URL of relay identities that re-publish
// videos on behalf of their origin channel.
const MirrorMarker = "/mirrorservice/"

// Placeholder names used when a follow-up fetch yields nothing.
const (
	UnknownChannel = "Unknown Channel"
	WebsiteLink    = "Website"
	MastodonLink   = "Mastodon"
)
