package style

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// SupportsTruecolor reports whether the terminal accepts 24-bit SGR
// colors. PROMPTLINE_TRUECOLOR=1 forces it on for terminals that support
// truecolor without advertising it.
func SupportsTruecolor() bool {
	if os.Getenv("PROMPTLINE_TRUECOLOR") == "1" {
		return true
	}
	if termenv.EnvColorProfile() == termenv.TrueColor {
		return true
	}
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "direct") || strings.Contains(term, "truecolor")
}
