package palette

import (
	"github.com/atma-cli/atma/util"
)

// Entry is one recorded composite: the operations that reverse it, plus the
// cursor on both sides so undo and redo restore it exactly.
type Entry struct {
	Ops          []Operation
	CursorBefore uint32
	CursorAfter  uint32
}

// History holds the undo and redo stacks of composite operations.
// Recording may be disabled; undo and redo remain available for entries
// already recorded.
type History struct {
	undo, redo util.Stack[Entry]
	enabled    bool
}

// NewHistory constructs an empty history with recording enabled.
func NewHistory() *History {
	return &History{enabled: true}
}

// Enabled reports whether composites are being recorded.
func (h *History) Enabled() bool {
	return h.enabled
}

// SetEnabled toggles recording.
func (h *History) SetEnabled(enabled bool) {
	h.enabled = enabled
}

// UndoCount returns the number of undoable composites.
func (h *History) UndoCount() int {
	return h.undo.Len()
}

// RedoCount returns the number of redoable composites.
func (h *History) RedoCount() int {
	return h.redo.Len()
}

// Record pushes a new undo entry. Any redoable composites are invalidated.
func (h *History) Record(e Entry) {
	e.CursorAfter = e.CursorBefore
	h.undo.Push(e)
	h.redo.Clear()
}

// AmendCursor updates the latest entry with the cursor position reached
// after the composite completed.
func (h *History) AmendCursor(cursor uint32) {
	if h.undo.Len() == 0 {
		return
	}
	items := h.undo.Items()
	items[len(items)-1].CursorAfter = cursor
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo.Clear()
	h.redo.Clear()
}

// Undo reverses up to count composites, returning how many were undone.
func (p *Palette) Undo(count int) (int, error) {
	done := 0
	for ; done < count; done++ {
		if p.history.undo.Len() == 0 {
			break
		}
		e := p.history.undo.Pop()

		var inverses []Operation
		for _, op := range e.Ops {
			inv, err := p.apply(op)
			if err != nil {
				return done, err
			}
			inverses = append(inverses, inv...)
		}
		redoOps := make([]Operation, 0, len(inverses))
		for i := len(inverses) - 1; i >= 0; i-- {
			redoOps = append(redoOps, inverses[i])
		}
		p.cursor = e.CursorBefore
		p.history.redo.Push(Entry{Ops: redoOps, CursorBefore: e.CursorBefore, CursorAfter: e.CursorAfter})
	}
	if done == 0 && count > 0 {
		return 0, ErrHistoryEmpty
	}
	return done, nil
}

// Redo reapplies up to count undone composites, returning how many were
// reapplied.
func (p *Palette) Redo(count int) (int, error) {
	done := 0
	for ; done < count; done++ {
		if p.history.redo.Len() == 0 {
			break
		}
		e := p.history.redo.Pop()

		var inverses []Operation
		for _, op := range e.Ops {
			inv, err := p.apply(op)
			if err != nil {
				return done, err
			}
			inverses = append(inverses, inv...)
		}
		undoOps := make([]Operation, 0, len(inverses))
		for i := len(inverses) - 1; i >= 0; i-- {
			undoOps = append(undoOps, inverses[i])
		}
		p.cursor = e.CursorAfter
		p.history.undo.Push(Entry{Ops: undoOps, CursorBefore: e.CursorBefore, CursorAfter: e.CursorAfter})
	}
	if done == 0 && count > 0 {
		return 0, ErrHistoryEmpty
	}
	return done, nil
}
