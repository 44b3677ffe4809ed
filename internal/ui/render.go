package ui

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	reset  = "\033[0m"
	bold   = "\033[1m"
	strike = "\033[9m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func C(color, s string) string {
	if disableColor {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(msg string)   { fmt.Println(C(fgGreen, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(os.Stderr, C(fgRed, symCross+" "+msg)) }

// Strike renders s struck through, for items already in the basket.
func Strike(s string) string { return C(strike, s) }

// Qty renders the quantity badge shown after an item; quantity 1 is
// implied and renders as nothing.
func Qty(n int) string {
	if n <= 1 {
		return ""
	}
	return C(fgGray, fmt.Sprintf(" ×%d", n))
}

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	t := Current()
	// compute visible width
	maxw := 0
	for _, ln := range lines {
		w := len([]rune(stripANSI(ln)))
		if w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		vis := len([]rune(stripANSI(s)))
		if vis < maxw {
			s = s + strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Println(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR)
	for _, ln := range lines {
		fmt.Println(t.V + " " + pad(ln) + " " + t.V)
	}
	fmt.Println(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR)
}
