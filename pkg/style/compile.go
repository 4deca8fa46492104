// Package style parses Starship-compatible style specs and compiles
// `[text](style)` templates into ANSI escape sequences, carrying the
// preceding segment's colors and attributes across segments so styles
// can be inherited with prev_fg/prev_bg.
package style

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/promptline/pkg/format"
)

const reset = "\x1b[0m"

// Apply styles the provided text with a single style spec. It shares the
// parser and renderer with Render, so the full token syntax is accepted.
func Apply(text, spec string) string {
	return Render("[$value]($style)", map[string]string{"value": text}, spec)
}

// Render substitutes `$name` tokens, evaluates `[text](style)` groups and
// produces an ANSI-formatted string terminated by exactly one reset.
// Truecolor support is detected from the environment; RenderWith accepts
// it explicitly.
func Render(tmpl string, tokens map[string]string, defaultStyle string) string {
	return RenderWith(tmpl, tokens, defaultStyle, SupportsTruecolor())
}

// RenderWith is Render with explicit truecolor capability.
//
//   - `$name` tokens are substituted first; the reserved `$style` token is
//     resolved per group to defaultStyle.
//   - ANSI escape sequences already present in the substituted string are
//     copied through verbatim and absorbed into the running style state so
//     later prev_fg/prev_bg references see their effect.
//   - A `[text](spec)` group whose spec is invalid (fg:none) renders a hard
//     reset before its text; malformed groups degrade to literal text.
func RenderWith(tmpl string, tokens map[string]string, defaultStyle string, truecolor bool) string {
	replaced := format.Substitute(tmpl, tokens)
	segments := scanSegments(replaced, defaultStyle)

	body := renderSegments(segments, truecolor)
	var out strings.Builder
	out.Grow(len(body) + len(reset))
	out.WriteString(body)
	out.WriteString(reset)
	return out.String()
}

type segmentKind uint8

const (
	// segmentPlain inherits whatever style came before.
	segmentPlain segmentKind = iota
	// segmentExplicit carries a parsed style spec.
	segmentExplicit
	// segmentInvalid had its style spec rejected (fg:none).
	segmentInvalid
	// segmentEscape is a raw ANSI sequence that updates the tracked state.
	segmentEscape
)

type segment struct {
	text string
	kind segmentKind
	spec styleSpec
}

// scanSegments splits the substituted template into plain runs, raw
// escape sequences and bracket groups.
func scanSegments(s, defaultStyle string) []segment {
	var segments []segment
	i := 0
	literalStart := 0

	for i < len(s) {
		b := s[i]

		if b == 0x1b {
			if literalStart < i {
				pushPlain(&segments, s[literalStart:i])
			}
			escStart := i
			i++
			if i < len(s) && s[i] == '[' {
				i++
				for i < len(s) {
					bb := s[i]
					i++
					if bb >= 0x40 && bb <= 0x7e {
						break
					}
				}
			}
			pushPlain(&segments, s[escStart:i])
			literalStart = i
			continue
		}

		if b == '[' {
			if literalStart < i {
				pushPlain(&segments, s[literalStart:i])
			}
			close := i + 1
			for close < len(s) && s[close] != ']' {
				close++
			}
			if close < len(s) && close+1 < len(s) && s[close+1] == '(' {
				paren := close + 2
				for paren < len(s) && s[paren] != ')' {
					paren++
				}
				if paren < len(s) {
					inner := s[i+1 : close]
					spec := s[close+2 : paren]
					if spec == "$style" {
						spec = defaultStyle
					}
					parsed, outcome := parseSpec(spec)
					switch outcome {
					case specNone:
						pushPlain(&segments, inner)
					case specInvalid:
						segments = append(segments, segment{text: inner, kind: segmentInvalid})
					default:
						segments = append(segments, segment{text: inner, kind: segmentExplicit, spec: parsed})
					}
					i = paren + 1
					literalStart = i
					continue
				}
			}
			// No matching ](...) pair: the bracket is literal text.
			pushPlain(&segments, "[")
			i++
			literalStart = i
			continue
		}

		i++
	}

	if literalStart < len(s) {
		pushPlain(&segments, s[literalStart:])
	}
	return segments
}

// pushPlain appends text as a plain segment, coalescing consecutive
// plain runs so they share one running state. Complete SGR sequences are
// tagged as escape segments instead.
func pushPlain(segments *[]segment, text string) {
	if text == "" {
		return
	}
	if strings.HasPrefix(text, "\x1b[") && strings.HasSuffix(text, "m") {
		*segments = append(*segments, segment{text: text, kind: segmentEscape})
		return
	}
	if n := len(*segments); n > 0 && (*segments)[n-1].kind == segmentPlain {
		(*segments)[n-1].text += text
		return
	}
	*segments = append(*segments, segment{text: text, kind: segmentPlain})
}

// appliedStyle is the running style state accumulated while replaying
// segments.
type appliedStyle struct {
	bold      bool
	italic    bool
	underline bool
	fg        *colorValue
	bg        *colorValue
}

func (a *appliedStyle) active() bool {
	return a.bold || a.italic || a.underline || a.fg != nil || a.bg != nil
}

func renderSegments(segments []segment, truecolor bool) string {
	var out strings.Builder
	var prev appliedStyle
	styleActive := false

	for _, seg := range segments {
		switch seg.kind {
		case segmentPlain:
			out.WriteString(seg.text)

		case segmentInvalid:
			// A rejected spec forces a clean slate before its text.
			out.WriteString(reset)
			prev = appliedStyle{}
			styleActive = false
			out.WriteString(seg.text)

		case segmentEscape:
			out.WriteString(seg.text)
			if absorbSGR(seg.text, &prev) {
				styleActive = prev.active()
			}

		case segmentExplicit:
			var inherit *appliedStyle
			if styleActive {
				inherit = &prev
			}
			applied, sgr, active := seg.spec.apply(inherit, truecolor)
			out.WriteString(sgr)
			out.WriteString(seg.text)
			prev = applied
			styleActive = active
		}
	}

	return out.String()
}

// apply composes the spec on top of the inherited state and returns the
// new state, the SGR sequence needed to reach it (empty when no codes
// are required) and whether any styling is active afterwards.
func (s styleSpec) apply(prev *appliedStyle, truecolor bool) (appliedStyle, string, bool) {
	var current appliedStyle
	if prev != nil {
		current = *prev
	}
	var codes []string

	if s.bold {
		codes = append(codes, "1")
		current.bold = true
	}
	if s.italic {
		codes = append(codes, "3")
		current.italic = true
	}
	if s.underline {
		codes = append(codes, "4")
		current.underline = true
	}

	if value, code, emitted := applyDirective(s.fg, prev, current.fg, foreground, truecolor); emitted {
		codes = append(codes, code)
		current.fg = value
	}
	if value, code, emitted := applyDirective(s.bg, prev, current.bg, background, truecolor); emitted {
		codes = append(codes, code)
		current.bg = value
	}

	sgr := ""
	if len(codes) > 0 {
		sgr = "\x1b[" + strings.Join(codes, ";") + "m"
	}
	return current, sgr, current.active()
}

// applyDirective resolves one channel's directive against the previous
// state. It returns the value to store, the SGR fragment, and whether a
// code was emitted (unspecified and unresolvable inherits emit nothing
// and keep the current value).
func applyDirective(d colorDirective, prev *appliedStyle, cur *colorValue, ch channel, truecolor bool) (*colorValue, string, bool) {
	switch d.kind {
	case directiveUnspecified:
		return cur, "", false
	case directiveReset:
		if ch == foreground {
			return nil, "39", true
		}
		return nil, "49", true
	case directiveSet:
		code, stored := colorToSGR(d.value, ch, truecolor)
		return &stored, code, true
	case directivePrevFg:
		if prev == nil || prev.fg == nil {
			return cur, "", false
		}
		code, stored := colorToSGR(*prev.fg, ch, truecolor)
		return &stored, code, true
	default: // directivePrevBg
		if prev == nil || prev.bg == nil {
			return cur, "", false
		}
		code, stored := colorToSGR(*prev.bg, ch, truecolor)
		return &stored, code, true
	}
}

// absorbSGR folds a raw SGR sequence's effect into the running state so
// subsequent prev_fg/prev_bg references see pre-styled module output.
// Returns false when seq is not an SGR sequence.
func absorbSGR(seq string, st *appliedStyle) bool {
	if !strings.HasPrefix(seq, "\x1b[") || !strings.HasSuffix(seq, "m") {
		return false
	}
	inner := seq[2 : len(seq)-1]
	if inner == "" {
		return false
	}

	parts := strings.Split(inner, ";")
	for i := 0; i < len(parts); i++ {
		switch parts[i] {
		case "":
			continue
		case "0":
			*st = appliedStyle{}
		case "1":
			st.bold = true
		case "22":
			st.bold = false
		case "3":
			st.italic = true
		case "23":
			st.italic = false
		case "4":
			st.underline = true
		case "24":
			st.underline = false
		case "39":
			st.fg = nil
		case "49":
			st.bg = nil
		case "38":
			i = absorbExtendedColor(parts, i, foreground, st)
		case "48":
			i = absorbExtendedColor(parts, i, background, st)
		default:
			if code, err := strconv.Atoi(parts[i]); err == nil {
				absorbSimpleColor(code, st)
			}
		}
	}
	return true
}

// absorbExtendedColor consumes the 38;... / 48;... forms starting at
// parts[i] and returns the index of the last part consumed.
func absorbExtendedColor(parts []string, i int, ch channel, st *appliedStyle) int {
	if i+1 >= len(parts) {
		return i
	}
	target := &st.fg
	if ch == background {
		target = &st.bg
	}
	switch parts[i+1] {
	case "2":
		if i+4 < len(parts) {
			r, errR := strconv.Atoi(parts[i+2])
			g, errG := strconv.Atoi(parts[i+3])
			b, errB := strconv.Atoi(parts[i+4])
			if errR == nil && errG == nil && errB == nil &&
				inByteRange(r) && inByteRange(g) && inByteRange(b) {
				v := rgbColor(uint8(r), uint8(g), uint8(b))
				*target = &v
			}
			return i + 4
		}
		return len(parts) - 1
	case "5":
		if i+2 < len(parts) {
			if idx, err := strconv.Atoi(parts[i+2]); err == nil && inByteRange(idx) {
				v := indexedColor(uint8(idx))
				*target = &v
			}
			return i + 2
		}
		return len(parts) - 1
	default:
		if code, err := strconv.Atoi(parts[i+1]); err == nil {
			absorbSimpleColor(code, st)
		}
		return i + 1
	}
}

func absorbSimpleColor(code int, st *appliedStyle) {
	switch {
	case code >= 30 && code <= 37:
		v := namedColor(uint8(code - 30))
		st.fg = &v
	case code >= 90 && code <= 97:
		v := brightColor(uint8(code - 90))
		st.fg = &v
	case code >= 40 && code <= 47:
		v := namedColor(uint8(code - 40))
		st.bg = &v
	case code >= 100 && code <= 107:
		v := brightColor(uint8(code - 100))
		st.bg = &v
	}
}

func inByteRange(v int) bool {
	return v >= 0 && v <= 255
}
