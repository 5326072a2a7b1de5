// Package dispatch implements the per-session state machine tying together a
// project, a buffer and an optional in-progress feed session. One dispatcher
// serves one editor connection; requests are strictly sequential, each fully
// processed before the next is accepted.
package dispatch

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/kestrel-ml/kestrel/buffer"
	"github.com/kestrel-ml/kestrel/history"
	"github.com/kestrel-ml/kestrel/lexer"
	"github.com/kestrel-ml/kestrel/project"
	"github.com/kestrel-ml/kestrel/telemetry"
	"github.com/kestrel-ml/kestrel/token"
)

// ErrNoSession is returned when a feed continuation arrives with no feed in
// progress. The caller must begin a feed first; this is a usage bug, not a
// recoverable condition, and the committed buffer state is unchanged.
var ErrNoSession = errors.New("dispatch: feed continuation without an open session")

// SeekVariant selects how a target position is reconciled with token edges.
type SeekVariant uint8

const (
	// SeekBefore leaves the cursor before the first token starting at or
	// after the target.
	SeekBefore SeekVariant = iota
	// SeekExact leaves the cursor at the unique split where every past
	// token ends at or before the target; a token containing the target
	// moves to the future whole, never split.
	SeekExact
	// SeekEnd moves the cursor to the very end of the history.
	SeekEnd
)

// Result reports where the token cursor ended up and which document it
// belongs to.
type Result struct {
	Pos  token.Position
	Path string
}

// feedState is the incremental-feed sub-machine, expressed as a closed set
// of states instead of a nullable session field.
type feedState interface {
	feedState()
}

// idle: no feed in progress.
type idle struct{}

// feeding: an open session accepting fragments.
type feeding struct {
	session *lexer.Session
}

func (idle) feedState()    {}
func (feeding) feedState() {}

// Dispatcher is the state of one editor connection.
type Dispatcher struct {
	id    uuid.UUID
	store *project.Store
	proj  *project.Project
	buf   *buffer.Buffer
	feed  feedState
	log   commonlog.Logger
}

// New creates a dispatcher bound to the default (no-config) project scope
// with an unnamed implementation buffer.
func New(store *project.Store) *Dispatcher {
	proj := store.ByKey("")
	return &Dispatcher{
		id:    uuid.New(),
		store: store,
		proj:  proj,
		buf:   buffer.New(proj, buffer.Implementation, ""),
		feed:  idle{},
		log:   commonlog.GetLogger("kestrel.dispatch"),
	}
}

// ID returns the session identity, used to correlate log lines.
func (d *Dispatcher) ID() uuid.UUID {
	return d.id
}

// Buffer returns the session's current buffer.
func (d *Dispatcher) Buffer() *buffer.Buffer {
	return d.buf
}

// Project returns the session's current project.
func (d *Dispatcher) Project() *project.Project {
	return d.proj
}

// clearSession drops any open feed session. Every state-mutating operation
// that is not a feed continuation goes through here first.
func (d *Dispatcher) clearSession() {
	if _, ok := d.feed.(feeding); ok {
		d.log.Debugf("session %s: dropping open feed session", d.id)
	}
	d.feed = idle{}
}

// BeginFeed starts a new feed session at the document start and commits its
// empty history, discarding previously committed tokens: a feed always
// re-lexes from the top of the document.
func (d *Dispatcher) BeginFeed(ctx context.Context) Result {
	timer := telemetry.FromContext(ctx).Start("begin feed")
	defer timer.End()

	d.clearSession()
	session := lexer.Start(d.buf)
	d.buf.Update(session.History())
	d.feed = feeding{session: session}

	d.log.Debugf("session %s: feed started for %q", d.id, d.buf.Path())
	return Result{Pos: session.Pos(), Path: d.buf.Path()}
}

// Feed scans one fragment into the open session and commits the grown
// history. Reaching end-of-input closes the session in the same step.
func (d *Dispatcher) Feed(ctx context.Context, frag lexer.Fragment) (Result, error) {
	timer := telemetry.FromContext(ctx).Start("feed")
	defer timer.End()

	st, ok := d.feed.(feeding)
	if !ok {
		return Result{}, ErrNoSession
	}

	if err := st.session.Feed(frag); err != nil {
		return Result{}, err
	}
	d.buf.Update(st.session.History())

	res := Result{Pos: st.session.Pos(), Path: d.buf.Path()}
	if st.session.EOF() {
		d.feed = idle{}
		d.log.Debugf("session %s: feed reached end of input at %s", d.id, res.Pos)
	}
	return res, nil
}

// DropTail discards every token after the cursor and commits the truncated
// history.
func (d *Dispatcher) DropTail(ctx context.Context) Result {
	timer := telemetry.FromContext(ctx).Start("drop tail")
	defer timer.End()

	d.clearSession()
	h := d.buf.LexerState().DropTail()
	d.buf.Update(h)
	return d.cursorResult(h)
}

// Seek repositions the token cursor to match a target source position. The
// forward-then-backward composition converges on the unique split for the
// target no matter which side of it the cursor started on.
func (d *Dispatcher) Seek(ctx context.Context, variant SeekVariant, pos token.Position) Result {
	timer := telemetry.FromContext(ctx).Start("seek")
	defer timer.End()

	d.clearSession()
	h := d.buf.LexerState()

	switch variant {
	case SeekEnd:
		h = h.SeekForward(func(token.Token) bool { return true })

	case SeekBefore:
		h = h.SeekForward(func(t token.Token) bool { return t.StartPos().Before(pos) })
		h = h.SeekBackward(func(t token.Token) bool { return !t.StartPos().Before(pos) })

	case SeekExact:
		h = h.SeekForward(func(t token.Token) bool { return t.StartPos().Before(pos) })
		h = h.SeekBackward(func(t token.Token) bool { return pos.Before(t.EndPos()) })
	}

	d.buf.Update(h)
	return d.cursorResult(h)
}

// Reset replaces the buffer wholesale, keeping the project.
func (d *Dispatcher) Reset(ctx context.Context, kind buffer.Kind, path string) Result {
	timer := telemetry.FromContext(ctx).Start("reset")
	defer timer.End()

	d.clearSession()
	d.buf = buffer.New(d.proj, kind, path)
	d.log.Debugf("session %s: reset to %s buffer %q", d.id, kind, path)
	return Result{Pos: token.Start, Path: path}
}

// Position reports the current scan position. Position is always a lexer
// view: when no feed is in progress a session is opened exactly as BeginFeed
// would, so subsequent fragments continue from it.
func (d *Dispatcher) Position(ctx context.Context) Result {
	if st, ok := d.feed.(feeding); ok {
		return Result{Pos: st.session.Pos(), Path: d.buf.Path()}
	}
	return d.BeginFeed(ctx)
}

// cursorResult reports the position at the history's cursor: just past the
// last token of the past, or the document start for an empty past.
func (d *Dispatcher) cursorResult(h history.History[token.Token]) Result {
	past := h.Past()
	pos := token.Start
	if len(past) > 0 {
		pos = past[len(past)-1].EndPos()
	}
	return Result{Pos: pos, Path: d.buf.Path()}
}
