package editor

// entry is one low-level undo record: the codepoints removed from
// [start,start+len(removed)) and the codepoints inserted in their place,
// plus the selection before/after the edit (§4.I "Undo / redo").
type entry struct {
	start            int
	removed, inserted []rune
	selBefore, selAfter Selection
}

// transaction groups zero or more entries applied as one undo/redo step
// (§4.I "A transaction groups zero or more low-level record entries").
type transaction struct {
	entries []entry
}

// undoStack is the bounded transaction stack (§4.I "The stack is bounded by
// max_undo_levels; oldest transactions are dropped on overflow").
type undoStack struct {
	done  []transaction
	undone []transaction
	depth int
	// current accumulates entries for the outermost open transaction. It is
	// nil when depth == 0; record then commits each entry as its own
	// one-entry transaction.
	current *transaction
}

// beginTransaction opens (or nests into) a transaction; while depth > 0 new
// entries coalesce into the outermost transaction (§4.I "begin_transaction
// increments a depth").
func (u *undoStack) beginTransaction() {
	if u.depth == 0 {
		u.current = &transaction{}
	}
	u.depth++
}

// endTransaction closes one nesting level, committing the transaction to
// the undo stack once the depth returns to zero.
func (u *undoStack) endTransaction(maxLevels int) {
	if u.depth == 0 {
		return
	}
	u.depth--
	if u.depth == 0 && u.current != nil {
		u.commit(*u.current, maxLevels)
		u.current = nil
	}
}

// record appends e to the open transaction, or commits a fresh one-entry
// transaction if none is open (a bare mutation outside begin/end).
func (u *undoStack) record(e entry, maxLevels int) {
	if u.depth > 0 && u.current != nil {
		u.current.entries = append(u.current.entries, e)
		return
	}
	u.commit(transaction{entries: []entry{e}}, maxLevels)
}

func (u *undoStack) commit(t transaction, maxLevels int) {
	if len(t.entries) == 0 {
		return
	}
	u.done = append(u.done, t)
	u.undone = u.undone[:0]
	if maxLevels > 0 && len(u.done) > maxLevels {
		u.done = u.done[len(u.done)-maxLevels:]
	}
}

// popUndo returns the most recent transaction and removes it from the done
// stack, or ok=false if nothing to undo.
func (u *undoStack) popUndo() (transaction, bool) {
	if len(u.done) == 0 {
		return transaction{}, false
	}
	t := u.done[len(u.done)-1]
	u.done = u.done[:len(u.done)-1]
	u.undone = append(u.undone, t)
	return t, true
}

// popRedo returns the most recently undone transaction and removes it from
// the redo stack, or ok=false if nothing to redo.
func (u *undoStack) popRedo() (transaction, bool) {
	if len(u.undone) == 0 {
		return transaction{}, false
	}
	t := u.undone[len(u.undone)-1]
	u.undone = u.undone[:len(u.undone)-1]
	u.done = append(u.done, t)
	return t, true
}
