// Package palette implements the palette store: cells indexed by stable
// identities, bidirectional name/position/group metadata, primitive
// operations with exact inverses, the undo/redo history and the composite
// planners layered on top.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atma-cli/atma/cell"
)

// ErrHistoryEmpty is reported by undo/redo on an empty stack.
var ErrHistoryEmpty = errors.New("history is empty")

// UnknownRefError reports a reference that resolves to no index.
type UnknownRefError struct {
	Ref cell.Ref
	// Suggestion holds the closest assigned name for name references, when
	// one is plausible.
	Suggestion string
}

func (e *UnknownRefError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown cell reference %s (did you mean %q?)", e.Ref, e.Suggestion)
	}
	return fmt.Sprintf("unknown cell reference %s", e.Ref)
}

// NotOccupiedError reports an operation requiring occupancy on an empty index.
type NotOccupiedError struct {
	Idx uint32
}

func (e *NotOccupiedError) Error() string {
	return fmt.Sprintf("cell :%d is not occupied", e.Idx)
}

// AlreadyOccupiedError reports an insert into an occupied index.
type AlreadyOccupiedError struct {
	Idx uint32
}

func (e *AlreadyOccupiedError) Error() string {
	return fmt.Sprintf("cell :%d is already occupied", e.Idx)
}

// NameConflictError reports a name already bound to another index.
type NameConflictError struct {
	Name string
	Idx  uint32
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("name %q is already assigned to cell :%d", e.Name, e.Idx)
}

// PositionConflictError reports a position already bound to another index.
type PositionConflictError struct {
	Pos cell.Position
	Idx uint32
}

func (e *PositionConflictError) Error() string {
	return fmt.Sprintf("position %s is already assigned to cell :%d", e.Pos, e.Idx)
}

// CycleError reports a reference cycle discovered during evaluation.
type CycleError struct {
	Path []uint32
}

func (e *CycleError) Error() string {
	parts := make([]string, 0, len(e.Path))
	for _, idx := range e.Path {
		parts = append(parts, fmt.Sprintf(":%d", idx))
	}
	return fmt.Sprintf("cell references form a cycle: %s", strings.Join(parts, " -> "))
}

// OutOfRoomError reports an insert that exceeded the palette bounds under
// the Error room policy.
type OutOfRoomError struct {
	Pos cell.Position
}

func (e *OutOfRoomError) Error() string {
	return fmt.Sprintf("no room in palette at %s", e.Pos)
}
