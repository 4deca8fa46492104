// Package format implements the `$name` token syntax used by status line
// format strings. Tokens are recognized anywhere in the string, not only
// at whitespace boundaries: a token starts with [A-Za-z_] and continues
// with [A-Za-z0-9_]*. A bare `$` that is not followed by a valid
// identifier character is treated as a literal dollar sign.
package format

// StyleToken is the reserved token name resolved inside style specs
// rather than during substitution ($style expands to a module's default
// style string).
const StyleToken = "style"

// Tokenize returns the distinct token names referenced in a format
// string, in encounter order.
func Tokenize(format string) []string {
	var out []string
	seen := make(map[string]struct{})
	i := 0
	for i < len(format) {
		if format[i] != '$' {
			i++
			continue
		}
		name, next := scanIdent(format, i+1)
		if name == "" {
			i++
			continue
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			out = append(out, name)
		}
		i = next
	}
	return out
}

// Substitute replaces every `$name` token with its value from values.
// Tokens are matched as whole identifiers, never by prefix: `$directoryX`
// is the single token "directoryX", not "directory" followed by X.
// Tokens with no corresponding value are removed; the reserved `$style`
// token is passed through untouched so the style compiler can resolve it
// in place. All other characters are preserved verbatim.
func Substitute(format string, values map[string]string) string {
	var out []byte
	i := 0
	for i < len(format) {
		b := format[i]
		if b != '$' {
			out = append(out, b)
			i++
			continue
		}
		name, next := scanIdent(format, i+1)
		if name == "" {
			out = append(out, '$')
			i++
			continue
		}
		if name == StyleToken {
			out = append(out, format[i:next]...)
			i = next
			continue
		}
		if val, ok := values[name]; ok {
			out = append(out, val...)
		}
		i = next
	}
	return string(out)
}

// scanIdent reads an identifier starting at position start. It returns
// the identifier (empty when start does not begin one) and the position
// just past it.
func scanIdent(s string, start int) (string, int) {
	if start >= len(s) || !isIdentStart(s[start]) {
		return "", start
	}
	end := start + 1
	for end < len(s) && isIdentPart(s[end]) {
		end++
	}
	return s[start:end], end
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}
