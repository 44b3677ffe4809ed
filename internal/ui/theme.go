package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Active string
	BoxUnchecked, BoxChecked                     string
	CornerTL, CornerTR, CornerBL, CornerBR       string
	H, V                                         string
}

var current = themeByName("classic")

func SetTheme(name string) {
	if strings.ToLower(name) == "mono" {
		disableColor = true
	}
	current = themeByName(name)
}

func themeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Active: "\033[93m",
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
		}
	case "mono":
		return Theme{
			Title: "", Muted: "", Accent: "", Success: "", Error: "", Active: "",
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default: // classic
		return Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Active: fgYellow,
			BoxUnchecked: "☐", BoxChecked: "☑",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
