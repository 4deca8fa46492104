package style

import (
	"fmt"
	"strings"
)

// styleSpec is a parsed style specification: boolean attributes plus one
// color directive per channel.
type styleSpec struct {
	bold      bool
	italic    bool
	underline bool
	fg        colorDirective
	bg        colorDirective
}

type specOutcome uint8

const (
	// specNone means the spec carried no recognized information; the
	// segment behaves as plain text inheriting the running state.
	specNone specOutcome = iota
	// specInvalid means the spec was rejected (fg:none); the segment is
	// rendered after a hard reset.
	specInvalid
	specParsed
)

// parseSpec tokenizes a whitespace-separated style spec. Unknown tokens
// are ignored rather than rejected so unrecognized future syntax
// degrades gracefully; the only hard rejection is fg:none.
func parseSpec(spec string) (styleSpec, specOutcome) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return styleSpec{}, specNone
	}

	var out styleSpec
	seenAny := false

	for _, raw := range strings.Fields(trimmed) {
		token := strings.ToLower(raw)
		switch token {
		case "bold":
			out.bold = true
			seenAny = true
			continue
		case "italic":
			out.italic = true
			seenAny = true
			continue
		case "underline":
			out.underline = true
			seenAny = true
			continue
		case "prev_fg":
			out.fg = colorDirective{kind: directivePrevFg}
			seenAny = true
			continue
		case "prev_bg":
			// A bare prev_bg copies the previous background into this
			// segment's foreground (the Powerline separator idiom).
			out.fg = colorDirective{kind: directivePrevBg}
			seenAny = true
			continue
		}

		if rest, ok := strings.CutPrefix(token, "fg:"); ok {
			if rest == "none" {
				return styleSpec{}, specInvalid
			}
			out.fg = parseColorDirective(rest, foreground)
			if out.fg.kind != directiveUnspecified {
				seenAny = true
			}
			continue
		}
		if rest, ok := strings.CutPrefix(token, "bg:"); ok {
			out.bg = parseColorDirective(rest, background)
			if out.bg.kind != directiveUnspecified {
				seenAny = true
			}
			continue
		}

		// Bare color tokens are treated as foreground colors.
		if v, ok := parseColorValue(token); ok {
			out.fg = colorDirective{kind: directiveSet, value: v}
			seenAny = true
		}
	}

	if !seenAny {
		return styleSpec{}, specNone
	}
	return out, specParsed
}

// ValidateSpec reports human-readable problems with a style spec without
// rejecting it. The renderer ignores unknown tokens at runtime; this is
// the configuration-validation view that surfaces them as warnings.
func ValidateSpec(spec string) []string {
	var problems []string
	for _, raw := range strings.Fields(strings.TrimSpace(spec)) {
		token := strings.ToLower(raw)
		switch token {
		case "bold", "italic", "underline", "prev_fg", "prev_bg":
			continue
		}
		if rest, ok := strings.CutPrefix(token, "fg:"); ok {
			if rest == "none" {
				problems = append(problems, "fg:none is invalid (use bg:none to clear the background)")
				continue
			}
			if !validColorToken(rest) {
				problems = append(problems, fmt.Sprintf("unknown foreground color %q", rest))
			}
			continue
		}
		if rest, ok := strings.CutPrefix(token, "bg:"); ok {
			if !validColorToken(rest) {
				problems = append(problems, fmt.Sprintf("unknown background color %q", rest))
			}
			continue
		}
		if !validColorToken(token) {
			problems = append(problems, fmt.Sprintf("unknown style token %q", raw))
		}
	}
	return problems
}

func validColorToken(token string) bool {
	switch token {
	case "none", "prev_fg", "prev_bg":
		return true
	}
	_, ok := parseColorValue(token)
	return ok
}
