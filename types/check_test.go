package types_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/kestrel-ml/kestrel/diag"
	"github.com/kestrel-ml/kestrel/scanner"
	"github.com/kestrel-ml/kestrel/syntax"
	"github.com/kestrel-ml/kestrel/token"
	"github.com/kestrel-ml/kestrel/types"
)

func check(t *testing.T, source string, ctx types.Context) *types.Info {
	t.Helper()
	toks := scanner.New(token.Start).Scan([]byte(source), true)
	return types.Check(syntax.Parse(toks), ctx)
}

func errorCount(info *types.Info) int {
	n := 0
	for _, d := range info.Diags {
		if d.Severity == diag.Error {
			n++
		}
	}
	return n
}

func TestCheckLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"let a = 1", "int"},
		{"let b = 3.14", "float"},
		{`let c = "hi"`, "string"},
		{"let d = true", "bool"},
		{"let e = false", "bool"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			info := check(t, tt.source, types.Context{})
			assert.Equal(t, 0, len(info.Diags))
			assert.Equal(t, 1, len(info.Bindings))
			assert.Equal(t, tt.want, info.Bindings[0].Type.String())
		})
	}
}

func TestCheckArithmetic(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		extensions map[string]bool
		want       string
		wantErrors int
	}{
		{
			name:   "int addition",
			source: "let n = 1 + 2",
			want:   "int",
		},
		{
			name:   "float multiplication",
			source: "let x = 1.5 * 2.0",
			want:   "float",
		},
		{
			name:       "mixed arithmetic rejected by default",
			source:     "let n = 1 + 2.5",
			want:       "?",
			wantErrors: 1,
		},
		{
			name:       "mixed arithmetic with floatcoerce",
			source:     "let n = 1 + 2.5",
			extensions: map[string]bool{"floatcoerce": true},
			want:       "float",
		},
		{
			name:       "string operand rejected",
			source:     `let n = 1 + "two"`,
			want:       "?",
			wantErrors: 1,
		},
		{
			name:   "string concat",
			source: `let s = "a" ^ "b"`,
			want:   "string",
		},
		{
			name:       "concat rejects non-strings",
			source:     `let s = 1 ^ "b"`,
			want:       "string",
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := check(t, tt.source, types.Context{Extensions: tt.extensions})
			assert.Equal(t, tt.wantErrors, errorCount(info))
			assert.Equal(t, tt.want, info.Bindings[0].Type.String())
		})
	}
}

func TestCheckComparison(t *testing.T) {
	info := check(t, "let p = 1 < 2", types.Context{})
	assert.Equal(t, 0, len(info.Diags))
	assert.Equal(t, "bool", info.Bindings[0].Type.String())

	info = check(t, `let p = 1 < "two"`, types.Context{})
	assert.Equal(t, 1, errorCount(info))
	assert.Equal(t, "bool", info.Bindings[0].Type.String())
}

func TestCheckConditional(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		want       string
		wantErrors int
	}{
		{
			name:   "matching branches",
			source: "let n = if true then 1 else 2",
			want:   "int",
		},
		{
			name:       "mismatched branches",
			source:     `let n = if true then 1 else "two"`,
			want:       "?",
			wantErrors: 1,
		},
		{
			name:       "non-bool condition",
			source:     "let n = if 1 then 2 else 3",
			want:       "int",
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := check(t, tt.source, types.Context{})
			assert.Equal(t, tt.wantErrors, errorCount(info))
			assert.Equal(t, tt.want, info.Bindings[0].Type.String())
		})
	}
}

func TestCheckFunctions(t *testing.T) {
	info := check(t, "let id = fun x -> x", types.Context{})
	assert.Equal(t, 0, len(info.Diags))
	_, ok := info.Bindings[0].Type.(*types.Arrow)
	assert.True(t, ok, "function literal should have an arrow type")

	info = check(t, "let add a b = a + b", types.Context{})
	assert.Equal(t, 0, len(info.Diags))
	outer, ok := info.Bindings[0].Type.(*types.Arrow)
	assert.True(t, ok)
	_, ok = outer.To.(*types.Arrow)
	assert.True(t, ok, "two parameters should curry into nested arrows")
}

func TestCheckApplication(t *testing.T) {
	source := "let apply = fun f -> f\nlet n = 1 2"
	info := check(t, source, types.Context{})
	// Applying an int is an error.
	assert.Equal(t, 1, errorCount(info))
}

func TestCheckUnboundIdentifier(t *testing.T) {
	info := check(t, "let n = nowhere + 1", types.Context{})
	assert.Equal(t, 1, errorCount(info))
	assert.True(t, len(info.Diags) > 0)
	assert.Equal(t, "typer", info.Diags[0].Source)
}

func TestCheckRecursiveBinding(t *testing.T) {
	// A recursive binding sees itself while its body is checked; without rec
	// the self-reference is unbound.
	info := check(t, "let rec loop n = loop n", types.Context{})
	assert.Equal(t, 0, errorCount(info))

	info = check(t, "let loop n = loop n", types.Context{})
	assert.Equal(t, 1, errorCount(info))
}

func TestCheckShadowing(t *testing.T) {
	info := check(t, "let x = 1;;\nlet x = \"two\"", types.Context{})
	assert.Equal(t, 0, len(info.Diags))

	e, ok := info.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "string", e.Type.String())
}

func TestCheckPackages(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		packages   []string
		want       string
		wantErrors int
	}{
		{
			name:     "math constant",
			source:   "let tau = pi * 2.0",
			packages: []string{"math"},
			want:     "float",
		},
		{
			name:     "stdio function",
			source:   `let u = print "hi"`,
			packages: []string{"stdio"},
			want:     "unit",
		},
		{
			name:     "str function",
			source:   `let n = length "abc"`,
			packages: []string{"str"},
			want:     "int",
		},
		{
			name:       "package not loaded",
			source:     "let tau = pi * 2.0",
			want:       "float",
			wantErrors: 1,
		},
		{
			name:       "argument mismatch",
			source:     "let u = print 1",
			packages:   []string{"stdio"},
			want:       "unit",
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := check(t, tt.source, types.Context{Packages: tt.packages})
			assert.Equal(t, tt.wantErrors, errorCount(info))
			assert.Equal(t, tt.want, info.Bindings[0].Type.String())
		})
	}
}

func TestCheckWarnUnused(t *testing.T) {
	source := "let n = let unused = 1 in 2"

	info := check(t, source, types.Context{})
	assert.Equal(t, 0, len(info.Diags))

	info = check(t, source, types.Context{Extensions: map[string]bool{"warnunused": true}})
	assert.Equal(t, 1, len(info.Diags))
	assert.Equal(t, diag.Warning, info.Diags[0].Severity)
	assert.Equal(t, 0, errorCount(info))

	// A used local binding stays quiet.
	info = check(t, "let n = let v = 1 in v", types.Context{Extensions: map[string]bool{"warnunused": true}})
	assert.Equal(t, 0, len(info.Diags))
}

func TestCheckLocalBindingNotInTopScope(t *testing.T) {
	info := check(t, "let n = let local = 1 in local", types.Context{})
	assert.Equal(t, 0, len(info.Diags))

	_, ok := info.Lookup("local")
	assert.False(t, ok, "local bindings must not leak into the top scope")
	_, ok = info.Lookup("n")
	assert.True(t, ok)
}

func TestLookupPredeclaredHasZeroPos(t *testing.T) {
	info := check(t, "let x = 1", types.Context{Packages: []string{"math"}})

	e, ok := info.Lookup("sqrt")
	assert.True(t, ok)
	assert.Equal(t, token.Position{}, e.Pos)

	e, ok = info.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 1, e.Pos.Line)
}

func TestTypeEqual(t *testing.T) {
	assert.True(t, types.Equal(types.Int, types.Int))
	assert.False(t, types.Equal(types.Int, types.Float))

	a := &types.Arrow{From: types.Int, To: types.Bool}
	b := &types.Arrow{From: types.Int, To: types.Bool}
	assert.True(t, types.Equal(a, b))
	assert.False(t, types.Equal(a, &types.Arrow{From: types.Float, To: types.Bool}))

	// Unknown compares unequal to everything, itself included.
	assert.False(t, types.Equal(types.Unknown, types.Unknown))
}

func TestArrowString(t *testing.T) {
	inner := &types.Arrow{From: types.Int, To: types.Int}
	assert.Equal(t, "int -> int", inner.String())

	higher := &types.Arrow{From: inner, To: types.Bool}
	assert.Equal(t, "(int -> int) -> bool", higher.String())
}
