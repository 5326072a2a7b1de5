package token_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/kestrel-ml/kestrel/token"
)

func TestPositionOrdering(t *testing.T) {
	tests := []struct {
		name   string
		p, q   token.Position
		before bool
	}{
		{"earlier line", token.Position{Line: 1, Column: 9}, token.Position{Line: 2, Column: 1}, true},
		{"same line earlier column", token.Position{Line: 3, Column: 4}, token.Position{Line: 3, Column: 5}, true},
		{"equal", token.Position{Line: 3, Column: 4}, token.Position{Line: 3, Column: 4}, false},
		{"later line", token.Position{Line: 4, Column: 1}, token.Position{Line: 3, Column: 9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.before, tt.p.Before(tt.q))
			assert.Equal(t, tt.before, tt.q.After(tt.p))
		})
	}
}

func TestTokenSpan(t *testing.T) {
	tok := token.Token{Type: token.IDENT, Text: "value", Start: 4, End: 9, Line: 2, Column: 5}

	assert.Equal(t, 5, tok.Len())
	assert.Equal(t, token.Position{Offset: 4, Line: 2, Column: 5}, tok.StartPos())
	assert.Equal(t, token.Position{Offset: 9, Line: 2, Column: 10}, tok.EndPos())
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "let", token.LET.String())
	assert.Equal(t, ";;", token.SEMISEMI.String())
	assert.Equal(t, "IDENT", token.IDENT.String())
	assert.Equal(t, "UNKNOWN", token.Type(255).String())
}
