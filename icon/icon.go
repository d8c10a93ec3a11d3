// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, or Unicode
// squares depending on user preference.
package icon

import (
	"github.com/seekbar-cli/seekbar/key"
	"github.com/spf13/viper"
)

// Visual variant constants, the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

// Get retrieves the visual representation for the receiver def based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Play Icon = iota + 1
	Pause
	Buffering
	Handle
	AdMarker
	PlayedAdMarker
	Fail
	Success
)

var icons = map[Icon]*iconDef{
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		squares: "▶",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		squares: "⏸",
	},
	Buffering: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "~",
		squares: "◌",
	},
	Handle: {
		emoji:   "🔘",
		nerd:    "",
		plain:   "O",
		squares: "●",
	},
	AdMarker: {
		emoji:   "🔸",
		nerd:    "",
		plain:   "!",
		squares: "▪",
	},
	PlayedAdMarker: {
		emoji:   "🔹",
		nerd:    "",
		plain:   ".",
		squares: "▫",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "x",
		squares: "■",
	},
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "+",
		squares: "□",
	},
}
