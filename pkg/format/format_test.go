package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   []string
	}{
		{"simple", "$directory $claude_model", []string{"directory", "claude_model"}},
		{"no tokens", "plain text", nil},
		{"empty", "", nil},
		{"dedup keeps first position", "$a $b $a $c", []string{"a", "b", "c"}},
		{"adjacent", "$a$b", []string{"a", "b"}},
		{"underscore and digits", "$git_branch2", []string{"git_branch2"}},
		{"bare dollar", "cost: $5", nil},
		{"dollar at end", "done$", nil},
		{"inside brackets", "[$symbol$model]($style)", []string{"symbol", "model", "style"}},
		{"leading digit is not a token", "$1abc", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.format))
		})
	}
}

func TestSubstitute(t *testing.T) {
	values := map[string]string{"a": "A", "b": "B"}

	assert.Equal(t, "A and B", Substitute("$a and $b", values))
	assert.Equal(t, "A", Substitute("$a$missing", values))
	assert.Equal(t, "cost: $5", Substitute("cost: $5", values))
	assert.Equal(t, "done$", Substitute("done$", values))
	// Maximal munch: $ab is one token, not $a followed by b.
	assert.Equal(t, "", Substitute("$ab", values))
	// Whole-identifier matching: a known name is never substituted as a
	// prefix of a longer unknown token.
	assert.Equal(t, "", Substitute("$directoryX", map[string]string{"directory": "/tmp"}))
}

func TestSubstitutePreservesStyleToken(t *testing.T) {
	got := Substitute("[$a]($style)", map[string]string{"a": "A", "style": "bold"})
	assert.Equal(t, "[A]($style)", got)
}
