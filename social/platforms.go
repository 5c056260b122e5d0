package social

// Platform is one row of the classification table.
type Platform struct {
	Name     string
	Patterns []string
}

// Platforms is checked in order. A pattern is a host, optionally followed by a
// path prefix; it matches the host itself and its subdomains.
var Platforms = []Platform{
	{"Twitter", []string{"twitter.com", "x.com"}},
	{"YouTube", []string{"youtube.com", "youtu.be"}},
	{"Patreon", []string{"patreon.com"}},
	{"Instagram", []string{"instagram.com"}},
	{"Facebook", []string{"facebook.com", "fb.com"}},
	{"Twitch", []string{"twitch.tv"}},
	{"TikTok", []string{"tiktok.com"}},
	{"Discord", []string{"discord.gg", "discord.com/invite/"}},
	{"GitHub", []string{"github.com"}},
	{"Reddit", []string{"reddit.com"}},
	{"Bluesky", []string{"bsky.app"}},
	{"Ko-fi", []string{"ko-fi.com"}},
	{"Liberapay", []string{"liberapay.com"}},
	{"Buy Me a Coffee", []string{"buymeacoffee.com"}},
	{"PayPal", []string{"paypal.me", "paypal.com"}},
	{"LinkedIn", []string{"linkedin.com"}},
	{"Telegram", []string{"t.me", "telegram.me"}},
	{"Odysee", []string{"odysee.com"}},
	{"Rumble", []string{"rumble.com"}},
	{"Spotify", []string{"open.spotify.com"}},
	{"SoundCloud", []string{"soundcloud.com"}},
	{"Bandcamp", []string{"bandcamp.com"}},
	{"Tipeee", []string{"tipeee.com"}},
	{"Matrix", []string{"matrix.to"}},
}
