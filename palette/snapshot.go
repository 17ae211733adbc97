package palette

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/filesystem"
	"github.com/atma-cli/atma/parse"
	"github.com/samber/mo"
)

// The persisted palette document. Cell expressions are stored in their
// canonical text form; the expression grammar is the codec, so anything
// that formats will parse back identically.

type snapshot struct {
	Cells     map[string]string   `json:"cells"`
	Names     map[string]uint32   `json:"names,omitempty"`
	Positions map[string]uint32   `json:"positions,omitempty"`
	Groups    map[string][]uint32 `json:"groups,omitempty"`
	Cursor    uint32              `json:"cursor"`
	Limits    Limits              `json:"limits"`
	History   *historySnapshot    `json:"history,omitempty"`
}

type historySnapshot struct {
	Undo []entrySnapshot `json:"undo"`
	Redo []entrySnapshot `json:"redo"`
}

type entrySnapshot struct {
	Ops          []opSnapshot `json:"ops"`
	CursorBefore uint32       `json:"cursor_before"`
	CursorAfter  uint32       `json:"cursor_after"`
}

type opSnapshot struct {
	Kind string  `json:"kind"`
	Idx  uint32  `json:"idx,omitempty"`
	Expr string  `json:"expr,omitempty"`
	Name string  `json:"name,omitempty"`
	Pos  string  `json:"pos,omitempty"`
	At   *uint32 `json:"at,omitempty"`
}

var opKindNames = map[OpKind]string{
	OpInsertCell:       "insert_cell",
	OpRemoveCell:       "remove_cell",
	OpSetExpr:          "set_expr",
	OpAssignName:       "assign_name",
	OpUnassignName:     "unassign_name",
	OpClearName:        "clear_name",
	OpAssignPosition:   "assign_position",
	OpUnassignPosition: "unassign_position",
	OpClearPosition:    "clear_position",
	OpAssignGroup:      "assign_group",
	OpUnassignGroup:    "unassign_group",
	OpClearGroups:      "clear_groups",
}

func snapshotOp(op Operation) opSnapshot {
	s := opSnapshot{Kind: opKindNames[op.Kind], Idx: op.Idx, Name: op.Name}
	if op.Expr != nil {
		s.Expr = op.Expr.String()
	}
	if op.Kind == OpAssignPosition || op.Kind == OpUnassignPosition {
		s.Pos = op.Pos.String()
	}
	if at, ok := op.At.Get(); ok {
		s.At = &at
	}
	return s
}

func restoreOp(s opSnapshot) (Operation, error) {
	op := Operation{Idx: s.Idx, Name: s.Name}

	found := false
	for kind, name := range opKindNames {
		if name == s.Kind {
			op.Kind = kind
			found = true
			break
		}
	}
	if !found {
		return op, fmt.Errorf("unknown operation kind %q", s.Kind)
	}

	if s.Expr != "" {
		e, err := parse.ParseCellExpr(s.Expr)
		if err != nil {
			return op, err
		}
		op.Expr = e
	}
	if s.Pos != "" {
		ref, err := parse.ParseCellRef(s.Pos)
		if err != nil {
			return op, err
		}
		op.Pos = ref.Pos
	}
	if s.At != nil {
		op.At = mo.Some(*s.At)
	}
	return op, nil
}

func snapshotEntries(entries []Entry) []entrySnapshot {
	out := make([]entrySnapshot, 0, len(entries))
	for _, e := range entries {
		es := entrySnapshot{CursorBefore: e.CursorBefore, CursorAfter: e.CursorAfter}
		for _, op := range e.Ops {
			es.Ops = append(es.Ops, snapshotOp(op))
		}
		out = append(out, es)
	}
	return out
}

func restoreEntries(entries []entrySnapshot) ([]Entry, error) {
	out := make([]Entry, 0, len(entries))
	for _, es := range entries {
		e := Entry{CursorBefore: es.CursorBefore, CursorAfter: es.CursorAfter}
		for _, os := range es.Ops {
			op, err := restoreOp(os)
			if err != nil {
				return nil, err
			}
			e.Ops = append(e.Ops, op)
		}
		out = append(out, e)
	}
	return out, nil
}

// MarshalJSON serializes the palette snapshot: cells, metadata maps, cursor
// and, when recording is enabled, the history stacks.
func (p *Palette) MarshalJSON() ([]byte, error) {
	s := snapshot{
		Cells:     make(map[string]string, len(p.cells)),
		Names:     make(map[string]uint32, p.names.Len()),
		Positions: make(map[string]uint32, p.positions.Len()),
		Groups:    make(map[string][]uint32, len(p.groups)),
		Cursor:    p.cursor,
		Limits:    p.limits,
	}
	for idx, e := range p.cells {
		s.Cells[strconv.FormatUint(uint64(idx), 10)] = e.String()
	}
	for name, idx := range p.names.Forward() {
		s.Names[name] = idx
	}
	for pos, idx := range p.positions.Forward() {
		s.Positions[pos.String()] = idx
	}
	for g, members := range p.groups {
		s.Groups[g] = members
	}
	if p.history.Enabled() {
		s.History = &historySnapshot{
			Undo: snapshotEntries(p.history.undo.Items()),
			Redo: snapshotEntries(p.history.redo.Items()),
		}
	}
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalJSON restores a palette from its snapshot.
func (p *Palette) UnmarshalJSON(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	restored := New().WithoutHistory()
	if s.Limits != (Limits{}) {
		restored.limits = s.Limits
	}
	restored.cursor = s.Cursor

	for key, text := range s.Cells {
		idx, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return fmt.Errorf("bad cell index %q: %w", key, err)
		}
		e, err := parse.ParseCellExpr(text)
		if err != nil {
			return fmt.Errorf("cell :%d: %w", idx, err)
		}
		restored.cells[uint32(idx)] = e
	}
	for name, idx := range s.Names {
		restored.names.Put(name, idx)
	}
	for posText, idx := range s.Positions {
		ref, err := parse.ParseCellRef(posText)
		if err != nil || ref.Kind != cell.RefPosition {
			return fmt.Errorf("bad position key %q", posText)
		}
		restored.positions.Put(ref.Pos, idx)
	}
	for g, members := range s.Groups {
		restored.groups[g] = members
	}

	restored.history = NewHistory()
	if s.History != nil {
		undo, err := restoreEntries(s.History.Undo)
		if err != nil {
			return err
		}
		redo, err := restoreEntries(s.History.Redo)
		if err != nil {
			return err
		}
		restored.history.undo.SetItems(undo)
		restored.history.redo.SetItems(redo)
	} else {
		restored.history.SetEnabled(false)
	}

	*p = *restored
	return nil
}

// Save writes the palette snapshot to a file.
func (p *Palette) Save(path string) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return filesystem.API().WriteFile(path, data, 0644)
}

// Load reads a palette snapshot from a file.
func Load(path string) (*Palette, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := New()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse palette file %s: %w", path, err)
	}
	return p, nil
}

// SortedNames returns the assigned names in sorted order.
func (p *Palette) SortedNames() []string {
	out := make([]string, 0, p.names.Len())
	for n := range p.names.Forward() {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
