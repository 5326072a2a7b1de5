// Package history provides a bidirectional, cursor-bearing log of ordered
// items. The cursor splits the log into a past (already replayed) and a
// future (available to replay or discard); seeking moves items across the
// cursor under a predicate without ever reordering them.
//
// A History is a value: every operation returns a new cursor over shared
// backing storage, so callers can compose seeks and commit the result in one
// place. Seeks cost O(k) in the items crossed, not O(n) in log size, so an
// editor repositions its caret without re-deriving the whole file.
package history

// History is an ordered two-sided sequence of items with a single cursor.
type History[T any] struct {
	items  []T
	cursor int
}

// New returns an empty history with the cursor at its only position.
func New[T any]() History[T] {
	return History[T]{}
}

// Of builds a history over items with the cursor at the frontier (all items
// in the past). Primarily useful in tests.
func Of[T any](items ...T) History[T] {
	return History[T]{items: items, cursor: len(items)}
}

// Len returns the total number of items, past and future.
func (h History[T]) Len() int {
	return len(h.items)
}

// Cursor returns the number of items in the past.
func (h History[T]) Cursor() int {
	return h.cursor
}

// Past returns a view of the items before the cursor, oldest first.
// The slice aliases the backing storage and must not be modified.
func (h History[T]) Past() []T {
	return h.items[:h.cursor]
}

// Future returns a view of the items at or after the cursor, in order.
// The slice aliases the backing storage and must not be modified.
func (h History[T]) Future() []T {
	return h.items[h.cursor:]
}

// Push appends an item at the frontier and moves the cursor past it.
// Pushing is only defined when the future is empty: producers always feed at
// the frontier. Pushing below the frontier is a caller bug and panics.
func (h History[T]) Push(item T) History[T] {
	if h.cursor != len(h.items) {
		panic("history: push below the frontier")
	}
	// The three-index slice forces a copy if another value shares the
	// backing array beyond the cursor.
	items := append(h.items[:h.cursor:h.cursor], item)
	return History[T]{items: items, cursor: h.cursor + 1}
}

// SeekForward moves the cursor rightward across consecutive future items
// satisfying pred. It stops at the first item failing pred or at the end.
func (h History[T]) SeekForward(pred func(T) bool) History[T] {
	c := h.cursor
	for c < len(h.items) && pred(h.items[c]) {
		c++
	}
	return History[T]{items: h.items, cursor: c}
}

// SeekBackward moves the cursor leftward across consecutive past items
// satisfying pred. It stops at the first item failing pred or at the start.
func (h History[T]) SeekBackward(pred func(T) bool) History[T] {
	c := h.cursor
	for c > 0 && pred(h.items[c-1]) {
		c--
	}
	return History[T]{items: h.items, cursor: c}
}

// DropTail discards the future, leaving the cursor where it is. Dropping an
// already-empty future is a no-op. The result's backing storage is capped so
// later pushes never clobber items visible through another value.
func (h History[T]) DropTail() History[T] {
	return History[T]{items: h.items[:h.cursor:h.cursor], cursor: h.cursor}
}
