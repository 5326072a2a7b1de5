// Package lexer implements the feed session: an ephemeral producer that
// turns raw source fragments into tokens appended to a history. A session is
// started against a buffer, fed fragment by fragment, and merged into the
// buffer after every step; it is discarded once end-of-input is reached or
// the buffer is mutated by anything that is not a feed.
package lexer

import (
	"errors"

	"github.com/kestrel-ml/kestrel/buffer"
	"github.com/kestrel-ml/kestrel/history"
	"github.com/kestrel-ml/kestrel/scanner"
	"github.com/kestrel-ml/kestrel/token"
)

// ErrSessionClosed is returned by Feed after end-of-input has been signaled.
// Hitting it is a caller bug, not a recoverable runtime condition: the
// session's history is unchanged and the caller must start a new session.
var ErrSessionClosed = errors.New("lexer: feed after end of input")

// Fragment is one chunk of source text. Final marks the fragment that ends
// the input.
type Fragment struct {
	Text  string
	Final bool
}

// Session owns one token history and the scanner producing into it.
type Session struct {
	hist history.History[token.Token]
	scan *scanner.Scanner
	path string
	eof  bool
}

// Start begins a session for the given buffer. Lexing starts from the
// document start with an empty history; the editor re-feeds from the top and
// the dispatcher reconciles with seeks.
func Start(buf *buffer.Buffer) *Session {
	return &Session{
		hist: history.New[token.Token](),
		scan: scanner.New(token.Start),
		path: buf.Path(),
	}
}

// Feed scans a fragment and appends the resulting tokens to the session's
// history. Feeding always happens at the frontier: the history only ever
// grows at its future end.
func (s *Session) Feed(frag Fragment) error {
	if s.eof {
		return ErrSessionClosed
	}

	for _, tok := range s.scan.Scan([]byte(frag.Text), frag.Final) {
		s.hist = s.hist.Push(tok)
	}
	if frag.Final {
		s.eof = true
	}
	return nil
}

// EOF reports whether the fed fragments have signaled end-of-input.
func (s *Session) EOF() bool {
	return s.eof
}

// Pos returns the current scan position: how far the fed input has been
// consumed into tokens.
func (s *Session) Pos() token.Position {
	return s.scan.Pos()
}

// Path returns the source path of the buffer the session was started for.
func (s *Session) Path() string {
	return s.path
}

// History returns the token log produced so far. The dispatcher merges it
// into the buffer after every feed step.
func (s *Session) History() history.History[token.Token] {
	return s.hist
}
