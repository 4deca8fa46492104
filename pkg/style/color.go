package style

import (
	"fmt"
	"strconv"
	"strings"
)

type channel int

const (
	foreground channel = iota
	background
)

type colorKind uint8

const (
	colorNamed colorKind = iota
	colorBright
	colorIndexed
	colorRGB
)

// colorValue is a resolved terminal color: one of the 8 named basic
// colors, their bright variants, a 256-palette index, or a 24-bit RGB
// triple.
type colorValue struct {
	kind    colorKind
	index   uint8
	r, g, b uint8
}

func namedColor(idx uint8) colorValue   { return colorValue{kind: colorNamed, index: idx} }
func brightColor(idx uint8) colorValue  { return colorValue{kind: colorBright, index: idx} }
func indexedColor(idx uint8) colorValue { return colorValue{kind: colorIndexed, index: idx} }
func rgbColor(r, g, b uint8) colorValue { return colorValue{kind: colorRGB, r: r, g: g, b: b} }

type directiveKind uint8

const (
	directiveUnspecified directiveKind = iota
	directiveReset
	directiveSet
	directivePrevFg
	directivePrevBg
)

// colorDirective is a parsed color request from a style spec, before it
// is resolved against the running style state.
type colorDirective struct {
	kind  directiveKind
	value colorValue
}

// colorToSGR resolves a color for the given channel into an SGR code
// fragment plus the value to remember in the running state. Without
// truecolor support an RGB value is downgraded to its 256-palette index
// and the indexed value is stored, so later inheritance operates on the
// already-downgraded color.
func colorToSGR(c colorValue, ch channel, truecolor bool) (string, colorValue) {
	switch c.kind {
	case colorNamed:
		if ch == foreground {
			return strconv.Itoa(int(30 + c.index)), c
		}
		return strconv.Itoa(int(40 + c.index)), c
	case colorBright:
		if ch == foreground {
			return strconv.Itoa(int(90 + c.index)), c
		}
		return strconv.Itoa(int(100 + c.index)), c
	case colorIndexed:
		return fmt.Sprintf("%s;5;%d", channelPrefix(ch), c.index), c
	default: // colorRGB
		if truecolor {
			return fmt.Sprintf("%s;2;%d;%d;%d", channelPrefix(ch), c.r, c.g, c.b), c
		}
		idx := rgbToANSI256(c.r, c.g, c.b)
		return fmt.Sprintf("%s;5;%d", channelPrefix(ch), idx), indexedColor(idx)
	}
}

func channelPrefix(ch channel) string {
	if ch == foreground {
		return "38"
	}
	return "48"
}

// rgbToANSI256 maps a 24-bit color onto the 256-color palette. Values
// whose channels are within a small tolerance of each other use the
// grayscale ramp (232-255 with 16/231 at the extremes); everything else
// is quantized onto the 6x6x6 color cube.
func rgbToANSI256(r, g, b uint8) uint8 {
	rg := int(r) - int(g)
	rb := int(r) - int(b)
	gb := int(g) - int(b)
	grayish := abs(rg) < 10 && abs(rb) < 10 && abs(gb) < 10
	if grayish {
		gray := (int(r) + int(g) + int(b)) / 3
		if gray < 8 {
			return 16
		}
		if gray > 238 {
			return 231
		}
		return uint8(232 + (gray-8)/10)
	}
	to6 := func(v uint8) int { return (int(v)*5 + 127) / 255 }
	return uint8(16 + 36*to6(r) + 6*to6(g) + to6(b))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// parseColorValue parses a color token: #RRGGBB hex, a decimal palette
// index 0-255, a bright-prefixed name, or a plain name.
func parseColorValue(token string) (colorValue, bool) {
	if hex, ok := strings.CutPrefix(token, "#"); ok {
		if len(hex) != 6 {
			return colorValue{}, false
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return colorValue{}, false
		}
		return rgbColor(uint8(n>>16), uint8(n>>8&0xff), uint8(n&0xff)), true
	}
	if isAllDigits(token) {
		n, err := strconv.ParseUint(token, 10, 16)
		if err != nil || n > 255 {
			return colorValue{}, false
		}
		return indexedColor(uint8(n)), true
	}
	if rest, ok := strings.CutPrefix(token, "bright-"); ok {
		if idx, ok := namedIndex(rest); ok {
			return brightColor(idx), true
		}
		return colorValue{}, false
	}
	if idx, ok := namedIndex(token); ok {
		return namedColor(idx), true
	}
	return colorValue{}, false
}

func namedIndex(name string) (uint8, bool) {
	switch name {
	case "black":
		return 0, true
	case "red":
		return 1, true
	case "green":
		return 2, true
	case "yellow":
		return 3, true
	case "blue":
		return 4, true
	case "magenta":
		return 5, true
	case "cyan":
		return 6, true
	case "white":
		return 7, true
	}
	return 0, false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseColorDirective parses the value part of fg:<v> / bg:<v>.
// `none` clears the background but is rejected earlier for foregrounds;
// unparseable values yield an unspecified directive (ignored).
func parseColorDirective(token string, ch channel) colorDirective {
	switch token {
	case "prev_fg":
		return colorDirective{kind: directivePrevFg}
	case "prev_bg":
		return colorDirective{kind: directivePrevBg}
	case "none":
		if ch == background {
			return colorDirective{kind: directiveReset}
		}
		return colorDirective{kind: directiveUnspecified}
	}
	if v, ok := parseColorValue(token); ok {
		return colorDirective{kind: directiveSet, value: v}
	}
	return colorDirective{kind: directiveUnspecified}
}
