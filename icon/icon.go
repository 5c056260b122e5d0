// Package icon renders UI symbols in the variant chosen by the user.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares.
package icon

import (
	"github.com/pixeltube-cli/pixeltube/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Video
	Channel
	Live
	Views
	Subscribers
	Link
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:     {emoji: "🎉", nerd: "", plain: "+", kaomoji: "(ᵔ◡ᵔ)", squares: "▣"},
	Fail:        {emoji: "💀", nerd: "", plain: "x", kaomoji: "(×_×)", squares: "▨"},
	Video:       {emoji: "🎬", nerd: "", plain: ">", kaomoji: "(▶‿▶)", squares: "▶"},
	Channel:     {emoji: "📺", nerd: "", plain: "@", kaomoji: "(◕‿◕)", squares: "▤"},
	Live:        {emoji: "🔴", nerd: "", plain: "*", kaomoji: "(°o°)", squares: "◉"},
	Views:       {emoji: "👀", nerd: "", plain: "v", kaomoji: "(◉_◉)", squares: "▦"},
	Subscribers: {emoji: "👥", nerd: "", plain: "s", kaomoji: "(^_^)", squares: "▩"},
	Link:        {emoji: "🔗", nerd: "", plain: "-", kaomoji: "(・ω・)", squares: "▧"},
}

// Get retrieves the representation of d in the configured variant.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for i.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.Get()
}
