package palette

import (
	"fmt"
	"sort"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/expr"
	"github.com/samber/mo"
)

// OverwritePolicy resolves collisions when an insert targets an occupied slot.
type OverwritePolicy uint8

const (
	OverwriteError OverwritePolicy = iota
	OverwriteSkip
	OverwriteMove
	OverwriteReplace
	OverwriteRemove
)

// ParseOverwritePolicy converts a policy keyword into an OverwritePolicy.
func ParseOverwritePolicy(text string) (OverwritePolicy, error) {
	switch text {
	case "error":
		return OverwriteError, nil
	case "skip":
		return OverwriteSkip, nil
	case "move":
		return OverwriteMove, nil
	case "overwrite":
		return OverwriteReplace, nil
	case "remove":
		return OverwriteRemove, nil
	}
	return OverwriteError, fmt.Errorf("unknown overwrite policy %q", text)
}

// RoomPolicy handles inserts that exceed the palette position bounds.
type RoomPolicy uint8

const (
	RoomError RoomPolicy = iota
	RoomStop
	RoomWrapLine
	RoomWrapPage
)

// ParseRoomPolicy converts a policy keyword into a RoomPolicy.
func ParseRoomPolicy(text string) (RoomPolicy, error) {
	switch text {
	case "error":
		return RoomError, nil
	case "stop":
		return RoomStop, nil
	case "wrap_line":
		return RoomWrapLine, nil
	case "wrap_page":
		return RoomWrapPage, nil
	}
	return RoomError, fmt.Errorf("unknown room policy %q", text)
}

// CursorBehavior selects how a composite repositions the palette cursor.
type CursorBehavior uint8

const (
	CursorStay CursorBehavior = iota
	CursorForward
	CursorBackward
	CursorToFirstNew
	CursorToLastNew
)

// ParseCursorBehavior converts a behavior keyword into a CursorBehavior.
func ParseCursorBehavior(text string) (CursorBehavior, error) {
	switch text {
	case "stay":
		return CursorStay, nil
	case "forward":
		return CursorForward, nil
	case "backward":
		return CursorBackward, nil
	case "first_new":
		return CursorToFirstNew, nil
	case "last_new":
		return CursorToLastNew, nil
	}
	return CursorStay, fmt.Errorf("unknown cursor behavior %q", text)
}

// moveCursor applies a cursor behavior over the affected index range.
func (p *Palette) moveCursor(b CursorBehavior, first, last uint32, affected int) {
	if affected == 0 {
		return
	}
	switch b {
	case CursorForward:
		p.cursor = last + 1
	case CursorBackward:
		if first > 0 {
			p.cursor = first - 1
		} else {
			p.cursor = 0
		}
	case CursorToFirstNew:
		p.cursor = first
	case CursorToLastNew:
		p.cursor = last
	}
	if p.history != nil {
		p.history.AmendCursor(p.cursor)
	}
}

// InsertOptions parameterize the InsertExprs composite.
type InsertOptions struct {
	// Positioning is the insert target: a reference resolved to a starting
	// index, or an unassigned position to begin a position run at. None
	// starts at the cursor.
	Positioning mo.Option[cell.Ref]
	// Name assigns each inserted cell to the named group, in insert order.
	Name      mo.Option[string]
	Overwrite OverwritePolicy
	Room      RoomPolicy
	Cursor    CursorBehavior
}

// planner accumulates a composite plan against a scratch palette so
// planning failures leave the real palette untouched.
type planner struct {
	sim  *Palette
	plan []Operation
}

func newPlanner(p *Palette) *planner {
	return &planner{sim: p.Clone()}
}

func (pl *planner) emit(op Operation) error {
	if _, err := pl.sim.apply(op); err != nil {
		return err
	}
	pl.plan = append(pl.plan, op)
	return nil
}

// removeClosure plans the removal of target and of every cell whose
// expression transitively references it.
func (pl *planner) removeClosure(target uint32) error {
	dependents := make(map[uint32][]uint32)
	for _, idx := range pl.sim.Indices() {
		e, _ := pl.sim.Expr(idx)
		for _, ref := range expr.Refs(e) {
			if rIdx, err := pl.sim.Resolve(ref); err == nil {
				dependents[rIdx] = append(dependents[rIdx], idx)
			}
		}
	}

	doomed := map[uint32]struct{}{target: {}}
	queue := []uint32{target}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range dependents[cur] {
			if _, seen := doomed[dep]; !seen {
				doomed[dep] = struct{}{}
				queue = append(queue, dep)
			}
		}
	}

	ordered := make([]uint32, 0, len(doomed))
	for idx := range doomed {
		ordered = append(ordered, idx)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
	for _, idx := range ordered {
		if err := pl.emit(RemoveCell(idx)); err != nil {
			return err
		}
	}
	return nil
}

// shiftRun plans moving the occupied run starting at target forward by one,
// rewriting every index reference into the shifted range.
func (pl *planner) shiftRun(target uint32) error {
	gap := target
	for pl.sim.IsOccupied(gap) {
		gap++
	}
	for i := gap; i > target; i-- {
		e, _ := pl.sim.Expr(i - 1)
		if err := pl.emit(RemoveCell(i - 1)); err != nil {
			return err
		}
		if err := pl.emit(InsertCell(i, e)); err != nil {
			return err
		}
	}

	rewrite := func(r cell.Ref) cell.Ref {
		if r.Kind == cell.RefIndex && r.Index >= target && r.Index < gap {
			return cell.Index(r.Index + 1)
		}
		return r
	}
	for _, idx := range pl.sim.Indices() {
		e, _ := pl.sim.Expr(idx)
		if ne := expr.RewriteRefs(e, rewrite); ne != e {
			if err := pl.emit(SetExpr(idx, ne)); err != nil {
				return err
			}
		}
	}
	return nil
}

// nextPosition advances a position by one column, applying the room policy
// at each boundary. The boolean result is false when the insert run must
// stop (RoomStop past the final slot).
func (p *Palette) nextPosition(pos cell.Position, room RoomPolicy) (cell.Position, bool, error) {
	pos.Column++
	return p.normalizePosition(pos, room)
}

// normalizePosition folds a position back into the palette bounds per the
// room policy.
func (p *Palette) normalizePosition(pos cell.Position, room RoomPolicy) (cell.Position, bool, error) {
	l := p.limits
	if pos.Column >= l.Columns {
		switch room {
		case RoomError:
			return pos, false, &OutOfRoomError{Pos: pos}
		case RoomStop:
			return pos, false, nil
		case RoomWrapLine:
			pos.Column = 0
			pos.Line++
		case RoomWrapPage:
			pos.Column = 0
			pos.Line = 0
			pos.Page++
		}
	}
	if pos.Line >= l.Lines {
		switch room {
		case RoomError:
			return pos, false, &OutOfRoomError{Pos: pos}
		case RoomStop:
			return pos, false, nil
		default:
			pos.Line = 0
			pos.Page++
		}
	}
	if pos.Page >= l.Pages {
		if room == RoomError {
			return pos, false, &OutOfRoomError{Pos: pos}
		}
		return pos, false, nil
	}
	return pos, true, nil
}

// InsertExprs plans and applies the central insert composite: each
// insertable expression is expanded, assigned a target slot per the
// overwrite and room policies, and inserted. Planning is transactional.
func (p *Palette) InsertExprs(inserts []expr.InsertExpr, opts InsertOptions) error {
	pl := newPlanner(p)

	var exprs []expr.Expr
	for _, ins := range inserts {
		es, err := ins.Exprs(pl.sim)
		if err != nil {
			return err
		}
		exprs = append(exprs, es...)
	}

	posMode := false
	var curPos cell.Position
	target := pl.sim.FreeIndex(pl.sim.cursor)
	if ref, ok := opts.Positioning.Get(); ok {
		if idx, err := pl.sim.Resolve(ref); err == nil {
			target = idx
		} else if ref.Kind == cell.RefPosition {
			posMode = true
			curPos = ref.Pos
		} else {
			return err
		}
	}

	var newIndices []uint32

run:
	for i, e := range exprs {
		if posMode {
			idx, stop, err := pl.placeAt(&curPos, e, opts)
			if err != nil {
				return err
			}
			if stop {
				break run
			}
			newIndices = append(newIndices, idx)
			// Only advance when more expressions remain, so a run ending
			// exactly at the final slot does not trip the room policy.
			if i < len(exprs)-1 {
				next, ok, err := pl.sim.nextPosition(curPos, opts.Room)
				if err != nil {
					return err
				}
				if !ok {
					break run
				}
				curPos = next
			}
			continue
		}

		for pl.sim.IsOccupied(target) {
			switch opts.Overwrite {
			case OverwriteError:
				return &AlreadyOccupiedError{Idx: target}
			case OverwriteSkip:
				target++
			case OverwriteMove:
				if err := pl.shiftRun(target); err != nil {
					return err
				}
			case OverwriteReplace:
				if err := pl.emit(RemoveCell(target)); err != nil {
					return err
				}
			case OverwriteRemove:
				if err := pl.removeClosure(target); err != nil {
					return err
				}
			}
		}
		if err := pl.emit(InsertCell(target, e)); err != nil {
			return err
		}
		newIndices = append(newIndices, target)
		target++
	}

	if name, ok := opts.Name.Get(); ok {
		for _, idx := range newIndices {
			if err := pl.emit(AssignGroup(idx, name)); err != nil {
				return err
			}
		}
	}

	if err := p.Apply(pl.plan); err != nil {
		return err
	}
	if len(newIndices) > 0 {
		p.moveCursor(opts.Cursor, newIndices[0], newIndices[len(newIndices)-1], len(newIndices))
	}
	return nil
}

// placeAt plans one insert in position mode. An assigned but unoccupied
// position reuses its reserved index; collisions follow the overwrite
// policy over positions.
func (pl *planner) placeAt(curPos *cell.Position, e expr.Expr, opts InsertOptions) (uint32, bool, error) {
	for {
		pos, ok, err := pl.sim.normalizePosition(*curPos, opts.Room)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, true, nil
		}
		*curPos = pos

		idx, assigned := pl.sim.positions.Get(pos)
		if assigned && pl.sim.IsOccupied(idx) {
			switch opts.Overwrite {
			case OverwriteError:
				return 0, false, &AlreadyOccupiedError{Idx: idx}
			case OverwriteSkip:
				next, ok, err := pl.sim.nextPosition(pos, opts.Room)
				if err != nil {
					return 0, false, err
				}
				if !ok {
					return 0, true, nil
				}
				*curPos = next
				continue
			case OverwriteReplace:
				if err := pl.emit(RemoveCell(idx)); err != nil {
					return 0, false, err
				}
			case OverwriteRemove:
				if err := pl.removeClosure(idx); err != nil {
					return 0, false, err
				}
			case OverwriteMove:
				return 0, false, fmt.Errorf("move overwrite requires an index target, not %s", pos)
			}
		}

		if !assigned {
			idx = pl.sim.FreeIndex(pl.sim.cursor)
		}
		if !pl.sim.IsOccupied(idx) {
			if err := pl.emit(InsertCell(idx, e)); err != nil {
				return 0, false, err
			}
		}
		if _, ok := pl.sim.positions.Get(pos); !ok {
			if err := pl.emit(AssignPosition(idx, pos)); err != nil {
				return 0, false, err
			}
		}
		return idx, false, nil
	}
}

// DeleteRange removes the selected cells. Metadata survives as reservations
// unless clearOrphans is set.
func (p *Palette) DeleteRange(sel cell.Selection, clearOrphans bool, behavior CursorBehavior) error {
	idxs, err := p.Select(sel)
	if err != nil {
		return err
	}
	pl := newPlanner(p)
	for _, idx := range idxs {
		if err := pl.emit(RemoveCell(idx)); err != nil {
			return err
		}
		if clearOrphans {
			for _, op := range []Operation{ClearName(idx), ClearPosition(idx), ClearGroups(idx)} {
				if err := pl.emit(op); err != nil {
					return err
				}
			}
		}
	}
	if err := p.Apply(pl.plan); err != nil {
		return err
	}
	if len(idxs) > 0 {
		p.moveCursor(behavior, idxs[0], idxs[len(idxs)-1], len(idxs))
	}
	return nil
}

// MoveRange relocates the selected cells to consecutive free slots starting
// at the positioning target. Metadata follows the moved cells, and every
// index reference to a moved cell is rewritten to its new index.
func (p *Palette) MoveRange(sel cell.Selection, positioning mo.Option[cell.Ref], behavior CursorBehavior) error {
	idxs, err := p.Select(sel)
	if err != nil {
		return err
	}
	if len(idxs) == 0 {
		return nil
	}

	pl := newPlanner(p)

	start := pl.sim.cursor
	if ref, ok := positioning.Get(); ok {
		start, err = pl.sim.Resolve(ref)
		if err != nil {
			return err
		}
	}

	type moved struct {
		from, to uint32
		e        expr.Expr
		name     mo.Option[string]
		pos      mo.Option[cell.Position]
		groups   []groupSlot
	}
	captured := make([]moved, 0, len(idxs))
	for _, idx := range idxs {
		e, _ := pl.sim.Expr(idx)
		m := moved{from: idx, e: e}
		if n, ok := pl.sim.NameOf(idx); ok {
			m.name = mo.Some(n)
		}
		if pos, ok := pl.sim.PositionOf(idx); ok {
			m.pos = mo.Some(pos)
		}
		m.groups = pl.sim.groupSlotsOf(idx)
		captured = append(captured, m)
	}

	// Remove sources first so their metadata can re-bind to the targets.
	for i := range captured {
		m := &captured[i]
		if err := pl.emit(RemoveCell(m.from)); err != nil {
			return err
		}
		if m.name.IsPresent() {
			if err := pl.emit(ClearName(m.from)); err != nil {
				return err
			}
		}
		if m.pos.IsPresent() {
			if err := pl.emit(ClearPosition(m.from)); err != nil {
				return err
			}
		}
		if len(m.groups) > 0 {
			if err := pl.emit(ClearGroups(m.from)); err != nil {
				return err
			}
		}
	}

	target := start
	mapping := make(map[uint32]uint32, len(captured))
	for i := range captured {
		m := &captured[i]
		for pl.sim.IsOccupied(target) {
			target++
		}
		m.to = target
		mapping[m.from] = m.to
		if err := pl.emit(InsertCell(m.to, m.e)); err != nil {
			return err
		}
		if n, ok := m.name.Get(); ok {
			if err := pl.emit(AssignName(m.to, n)); err != nil {
				return err
			}
		}
		if pos, ok := m.pos.Get(); ok {
			if err := pl.emit(AssignPosition(m.to, pos)); err != nil {
				return err
			}
		}
		for _, slot := range m.groups {
			if err := pl.emit(AssignGroupAt(m.to, slot.group, slot.at)); err != nil {
				return err
			}
		}
		target++
	}

	rewrite := func(r cell.Ref) cell.Ref {
		if r.Kind == cell.RefIndex {
			if to, ok := mapping[r.Index]; ok {
				return cell.Index(to)
			}
		}
		return r
	}
	for _, idx := range pl.sim.Indices() {
		e, _ := pl.sim.Expr(idx)
		if ne := expr.RewriteRefs(e, rewrite); ne != e {
			if err := pl.emit(SetExpr(idx, ne)); err != nil {
				return err
			}
		}
	}

	if err := p.Apply(pl.plan); err != nil {
		return err
	}
	p.moveCursor(behavior, captured[0].to, captured[len(captured)-1].to, len(captured))
	return nil
}

// groupSlot records a group membership with its position.
type groupSlot struct {
	group string
	at    uint32
}

func (p *Palette) groupSlotsOf(idx uint32) []groupSlot {
	var out []groupSlot
	for _, g := range p.GroupsOf(idx) {
		for i, member := range p.groups[g] {
			if member == idx {
				out = append(out, groupSlot{group: g, at: uint32(i)})
			}
		}
	}
	return out
}

// SetRange replaces the expression of every selected cell with the
// expansion of the given insertable expression, which must expand to
// exactly one cell expression.
func (p *Palette) SetRange(sel cell.Selection, ins expr.InsertExpr) error {
	idxs, err := p.Select(sel)
	if err != nil {
		return err
	}
	pl := newPlanner(p)
	for _, idx := range idxs {
		es, err := ins.Exprs(pl.sim)
		if err != nil {
			return err
		}
		if len(es) != 1 {
			return fmt.Errorf("expression expands to %d cells; set requires exactly one", len(es))
		}
		if err := pl.emit(SetExpr(idx, es[0])); err != nil {
			return err
		}
	}
	return p.Apply(pl.plan)
}

// FixRange resolves each selected cell to its current color and replaces
// its expression with that literal, severing references. Valueless cells
// are left untouched.
func (p *Palette) FixRange(sel cell.Selection) error {
	idxs, err := p.Select(sel)
	if err != nil {
		return err
	}
	pl := newPlanner(p)
	for _, idx := range idxs {
		c, err := pl.sim.Color(cell.Index(idx))
		if err != nil {
			return err
		}
		col, ok := c.Get()
		if !ok {
			continue
		}
		if err := pl.emit(SetExpr(idx, expr.Lit{Color: col})); err != nil {
			return err
		}
	}
	return p.Apply(pl.plan)
}
