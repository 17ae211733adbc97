package palette

import (
	"fmt"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/expr"
	"github.com/samber/mo"
)

// OpKind discriminates the primitive operations.
type OpKind uint8

const (
	OpInsertCell OpKind = iota
	OpRemoveCell
	OpSetExpr
	OpAssignName
	OpUnassignName
	OpClearName
	OpAssignPosition
	OpUnassignPosition
	OpClearPosition
	OpAssignGroup
	OpUnassignGroup
	OpClearGroups
)

// Operation is a primitive palette mutation. It carries its forward
// arguments; applying it yields the inverse operations that undo it
// exactly, including prior group positions.
type Operation struct {
	Kind OpKind

	Idx  uint32
	Expr expr.Expr     // OpInsertCell, OpSetExpr
	Name string        // name and group operations
	Pos  cell.Position // position operations
	// At is the insertion position within a group for OpAssignGroup.
	// None appends.
	At mo.Option[uint32]
}

func (op Operation) String() string {
	switch op.Kind {
	case OpInsertCell:
		return fmt.Sprintf("insert_cell(:%d, %s)", op.Idx, op.Expr)
	case OpRemoveCell:
		return fmt.Sprintf("remove_cell(:%d)", op.Idx)
	case OpSetExpr:
		return fmt.Sprintf("set_expr(:%d, %s)", op.Idx, op.Expr)
	case OpAssignName:
		return fmt.Sprintf("assign_name(:%d, %s)", op.Idx, op.Name)
	case OpUnassignName:
		return fmt.Sprintf("unassign_name(%s)", op.Name)
	case OpClearName:
		return fmt.Sprintf("clear_name(:%d)", op.Idx)
	case OpAssignPosition:
		return fmt.Sprintf("assign_position(:%d, %s)", op.Idx, op.Pos)
	case OpUnassignPosition:
		return fmt.Sprintf("unassign_position(%s)", op.Pos)
	case OpClearPosition:
		return fmt.Sprintf("clear_position(:%d)", op.Idx)
	case OpAssignGroup:
		return fmt.Sprintf("assign_group(:%d, %s)", op.Idx, op.Name)
	case OpUnassignGroup:
		return fmt.Sprintf("unassign_group(:%d, %s)", op.Idx, op.Name)
	case OpClearGroups:
		return fmt.Sprintf("clear_groups(:%d)", op.Idx)
	}
	return "null"
}

// Constructors for the primitive operations.

func InsertCell(idx uint32, e expr.Expr) Operation {
	return Operation{Kind: OpInsertCell, Idx: idx, Expr: e}
}

func RemoveCell(idx uint32) Operation {
	return Operation{Kind: OpRemoveCell, Idx: idx}
}

func SetExpr(idx uint32, e expr.Expr) Operation {
	return Operation{Kind: OpSetExpr, Idx: idx, Expr: e}
}

func AssignName(idx uint32, name string) Operation {
	return Operation{Kind: OpAssignName, Idx: idx, Name: name}
}

func UnassignName(name string) Operation {
	return Operation{Kind: OpUnassignName, Name: name}
}

func ClearName(idx uint32) Operation {
	return Operation{Kind: OpClearName, Idx: idx}
}

func AssignPosition(idx uint32, pos cell.Position) Operation {
	return Operation{Kind: OpAssignPosition, Idx: idx, Pos: pos}
}

func UnassignPosition(pos cell.Position) Operation {
	return Operation{Kind: OpUnassignPosition, Pos: pos}
}

func ClearPosition(idx uint32) Operation {
	return Operation{Kind: OpClearPosition, Idx: idx}
}

func AssignGroup(idx uint32, group string) Operation {
	return Operation{Kind: OpAssignGroup, Idx: idx, Name: group}
}

func AssignGroupAt(idx uint32, group string, at uint32) Operation {
	return Operation{Kind: OpAssignGroup, Idx: idx, Name: group, At: mo.Some(at)}
}

func UnassignGroup(idx uint32, group string) Operation {
	return Operation{Kind: OpUnassignGroup, Idx: idx, Name: group}
}

func ClearGroups(idx uint32) Operation {
	return Operation{Kind: OpClearGroups, Idx: idx}
}

// apply performs a primitive operation and returns its inverse operations;
// they undo the operation when applied last to first.
func (p *Palette) apply(op Operation) ([]Operation, error) {
	switch op.Kind {
	case OpInsertCell:
		if p.IsOccupied(op.Idx) {
			return nil, &AlreadyOccupiedError{Idx: op.Idx}
		}
		p.cells[op.Idx] = op.Expr
		return []Operation{RemoveCell(op.Idx)}, nil

	case OpRemoveCell:
		old, ok := p.cells[op.Idx]
		if !ok {
			return nil, &NotOccupiedError{Idx: op.Idx}
		}
		delete(p.cells, op.Idx)
		return []Operation{InsertCell(op.Idx, old)}, nil

	case OpSetExpr:
		old, ok := p.cells[op.Idx]
		if !ok {
			return nil, &NotOccupiedError{Idx: op.Idx}
		}
		p.cells[op.Idx] = op.Expr
		return []Operation{SetExpr(op.Idx, old)}, nil

	case OpAssignName:
		if owner, ok := p.names.Get(op.Name); ok {
			if owner == op.Idx {
				return nil, nil
			}
			return nil, &NameConflictError{Name: op.Name, Idx: owner}
		}
		var inverse []Operation
		if old, ok := p.names.GetInverse(op.Idx); ok {
			inverse = append(inverse, AssignName(op.Idx, old))
		}
		inverse = append(inverse, UnassignName(op.Name))
		p.names.Put(op.Name, op.Idx)
		return inverse, nil

	case OpUnassignName:
		idx, ok := p.names.Get(op.Name)
		if !ok {
			return nil, &UnknownRefError{Ref: cell.Name(op.Name), Suggestion: p.suggestName(op.Name)}
		}
		p.names.Remove(op.Name)
		return []Operation{AssignName(idx, op.Name)}, nil

	case OpClearName:
		old, ok := p.names.GetInverse(op.Idx)
		if !ok {
			return nil, nil
		}
		p.names.RemoveInverse(op.Idx)
		return []Operation{AssignName(op.Idx, old)}, nil

	case OpAssignPosition:
		if owner, ok := p.positions.Get(op.Pos); ok {
			if owner == op.Idx {
				return nil, nil
			}
			return nil, &PositionConflictError{Pos: op.Pos, Idx: owner}
		}
		var inverse []Operation
		if old, ok := p.positions.GetInverse(op.Idx); ok {
			inverse = append(inverse, AssignPosition(op.Idx, old))
		}
		inverse = append(inverse, UnassignPosition(op.Pos))
		p.positions.Put(op.Pos, op.Idx)
		return inverse, nil

	case OpUnassignPosition:
		idx, ok := p.positions.Get(op.Pos)
		if !ok {
			return nil, &UnknownRefError{Ref: cell.At(op.Pos)}
		}
		p.positions.Remove(op.Pos)
		return []Operation{AssignPosition(idx, op.Pos)}, nil

	case OpClearPosition:
		old, ok := p.positions.GetInverse(op.Idx)
		if !ok {
			return nil, nil
		}
		p.positions.RemoveInverse(op.Idx)
		return []Operation{AssignPosition(op.Idx, old)}, nil

	case OpAssignGroup:
		members := p.groups[op.Name]
		at := uint32(len(members))
		if v, ok := op.At.Get(); ok {
			at = v
		}
		if at > uint32(len(members)) {
			return nil, fmt.Errorf("group %q index %d out of bounds (%d members)", op.Name, at, len(members))
		}
		members = append(members, 0)
		copy(members[at+1:], members[at:])
		members[at] = op.Idx
		p.groups[op.Name] = members
		return []Operation{UnassignGroup(op.Idx, op.Name)}, nil

	case OpUnassignGroup:
		members := p.groups[op.Name]
		for i := len(members) - 1; i >= 0; i-- {
			if members[i] == op.Idx {
				p.groups[op.Name] = append(members[:i], members[i+1:]...)
				if len(p.groups[op.Name]) == 0 {
					delete(p.groups, op.Name)
				}
				return []Operation{AssignGroupAt(op.Idx, op.Name, uint32(i))}, nil
			}
		}
		return nil, nil

	case OpClearGroups:
		var inverse []Operation
		for _, g := range p.GroupsOf(op.Idx) {
			members := p.groups[g]
			for i := len(members) - 1; i >= 0; i-- {
				if members[i] == op.Idx {
					members = append(members[:i], members[i+1:]...)
					inverse = append(inverse, AssignGroupAt(op.Idx, g, uint32(i)))
				}
			}
			if len(members) == 0 {
				delete(p.groups, g)
			} else {
				p.groups[g] = members
			}
		}
		return inverse, nil
	}
	return nil, fmt.Errorf("unknown operation kind %d", op.Kind)
}

// Apply performs a sequence of primitive operations as one composite,
// recording the inverse in the history. A failure mid-sequence rolls back
// the already-applied prefix, leaving the palette untouched.
func (p *Palette) Apply(ops []Operation) error {
	if len(ops) == 0 {
		return nil
	}
	cursorBefore := p.cursor
	var inverses []Operation
	for _, op := range ops {
		inv, err := p.apply(op)
		if err != nil {
			// Roll back the applied prefix in reverse order.
			for i := len(inverses) - 1; i >= 0; i-- {
				if _, rollbackErr := p.apply(inverses[i]); rollbackErr != nil {
					return fmt.Errorf("rollback failed after %v: %w", err, rollbackErr)
				}
			}
			return err
		}
		inverses = append(inverses, inv...)
	}

	if p.history != nil && p.history.Enabled() {
		reversed := make([]Operation, 0, len(inverses))
		for i := len(inverses) - 1; i >= 0; i-- {
			reversed = append(reversed, inverses[i])
		}
		p.history.Record(Entry{Ops: reversed, CursorBefore: cursorBefore})
	}
	return nil
}
