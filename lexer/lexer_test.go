package lexer_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/kestrel-ml/kestrel/buffer"
	"github.com/kestrel-ml/kestrel/lexer"
	"github.com/kestrel-ml/kestrel/project"
	"github.com/kestrel-ml/kestrel/token"
)

func newSession(t *testing.T) *lexer.Session {
	t.Helper()
	store := project.NewStore()
	buf := buffer.New(store.ByKey(""), buffer.Implementation, "demo.ml")
	return lexer.Start(buf)
}

func TestSessionStartsEmpty(t *testing.T) {
	s := newSession(t)

	assert.False(t, s.EOF())
	assert.Equal(t, 0, s.History().Len())
	assert.Equal(t, token.Start, s.Pos())
	assert.Equal(t, "demo.ml", s.Path())
}

func TestFeedGrowsHistoryAtFrontier(t *testing.T) {
	s := newSession(t)

	assert.NoError(t, s.Feed(lexer.Fragment{Text: "let x = "}))
	h := s.History()
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, h.Len(), h.Cursor())

	assert.NoError(t, s.Feed(lexer.Fragment{Text: "1;;", Final: true}))
	h = s.History()
	assert.Equal(t, 5, h.Len())

	past := h.Past()
	assert.Equal(t, token.LET, past[0].Type)
	assert.Equal(t, token.SEMISEMI, past[4].Type)
}

func TestFeedReachesEOFExactlyOnce(t *testing.T) {
	s := newSession(t)

	assert.NoError(t, s.Feed(lexer.Fragment{Text: "let x = 1"}))
	assert.False(t, s.EOF())

	assert.NoError(t, s.Feed(lexer.Fragment{Text: "", Final: true}))
	assert.True(t, s.EOF())
}

func TestFeedAfterEOFFails(t *testing.T) {
	s := newSession(t)
	assert.NoError(t, s.Feed(lexer.Fragment{Text: "let x = 1", Final: true}))

	before := s.History()
	err := s.Feed(lexer.Fragment{Text: "let y = 2"})
	assert.IsError(t, err, lexer.ErrSessionClosed)

	// The failed feed left the history untouched.
	assert.Equal(t, before.Len(), s.History().Len())
}

func TestPosAdvancesWithConsumedInput(t *testing.T) {
	s := newSession(t)

	assert.NoError(t, s.Feed(lexer.Fragment{Text: "let x = 1\nlet "}))
	pos := s.Pos()
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 5, pos.Column)

	assert.NoError(t, s.Feed(lexer.Fragment{Text: "y = 2", Final: true}))
	assert.Equal(t, 2, s.Pos().Line)
	assert.Equal(t, 10, s.Pos().Column)
}

func TestFeedHoldsBackIncompleteTrailingToken(t *testing.T) {
	s := newSession(t)

	assert.NoError(t, s.Feed(lexer.Fragment{Text: "let lon"}))
	assert.Equal(t, 1, s.History().Len())

	assert.NoError(t, s.Feed(lexer.Fragment{Text: "g_name = 1", Final: true}))
	past := s.History().Past()
	assert.Equal(t, 4, len(past))
	assert.Equal(t, "long_name", past[1].Text)
}
