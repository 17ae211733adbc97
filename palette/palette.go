package palette

import (
	"sort"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/color"
	"github.com/atma-cli/atma/expr"
	"github.com/atma-cli/atma/key"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Limits bound the positions assignable during inserts.
type Limits struct {
	Pages, Lines, Columns uint16
}

// DefaultLimits is used when no configuration is present.
var DefaultLimits = Limits{Pages: 16, Lines: 16, Columns: 16}

// LimitsFromConfig reads the palette geometry from the global configuration.
func LimitsFromConfig() Limits {
	l := Limits{
		Pages:   uint16(viper.GetInt(key.PaletteMaxPages)),
		Lines:   uint16(viper.GetInt(key.PaletteMaxLines)),
		Columns: uint16(viper.GetInt(key.PaletteMaxColumns)),
	}
	if l.Pages == 0 || l.Lines == 0 || l.Columns == 0 {
		return DefaultLimits
	}
	return l
}

// Palette is the palette object: an ordered sparse map from stable indices
// to cell expressions plus bidirectional metadata maps, a cursor and an
// optional operation history. It is not safe for concurrent use.
type Palette struct {
	cells     map[uint32]expr.Expr
	names     *BiMap[string, uint32]
	positions *BiMap[cell.Position, uint32]
	groups    map[string][]uint32

	cursor  uint32
	limits  Limits
	history *History
}

// New constructs an empty palette with history recording enabled.
func New() *Palette {
	return &Palette{
		cells:     make(map[uint32]expr.Expr),
		names:     NewBiMap[string, uint32](),
		positions: NewBiMap[cell.Position, uint32](),
		groups:    make(map[string][]uint32),
		limits:    LimitsFromConfig(),
		history:   NewHistory(),
	}
}

// WithoutHistory disables operation recording and returns the palette.
func (p *Palette) WithoutHistory() *Palette {
	p.history.SetEnabled(false)
	return p
}

// WithLimits overrides the palette geometry and returns the palette.
func (p *Palette) WithLimits(l Limits) *Palette {
	p.limits = l
	return p
}

// History exposes the operation log.
func (p *Palette) History() *History {
	return p.history
}

// Limits returns the palette geometry.
func (p *Palette) Limits() Limits {
	return p.limits
}

// Cursor returns the insert cursor index.
func (p *Palette) Cursor() uint32 {
	return p.cursor
}

// SetCursor moves the insert cursor.
func (p *Palette) SetCursor(idx uint32) {
	p.cursor = idx
}

// Len returns the number of occupied cells.
func (p *Palette) Len() int {
	return len(p.cells)
}

// IsOccupied reports whether an index holds a cell.
func (p *Palette) IsOccupied(idx uint32) bool {
	_, ok := p.cells[idx]
	return ok
}

// Expr returns the expression stored at an index.
func (p *Palette) Expr(idx uint32) (expr.Expr, bool) {
	e, ok := p.cells[idx]
	return e, ok
}

// Indices returns every occupied index in ascending order.
func (p *Palette) Indices() []uint32 {
	out := make([]uint32, 0, len(p.cells))
	for idx := range p.cells {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NameOf returns the name assigned to an index.
func (p *Palette) NameOf(idx uint32) (string, bool) {
	return p.names.GetInverse(idx)
}

// PositionOf returns the position assigned to an index.
func (p *Palette) PositionOf(idx uint32) (cell.Position, bool) {
	return p.positions.GetInverse(idx)
}

// GroupsOf returns the groups an index belongs to, in sorted order.
func (p *Palette) GroupsOf(idx uint32) []string {
	var out []string
	for g, members := range p.groups {
		for _, m := range members {
			if m == idx {
				out = append(out, g)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// Group returns the ordered member indices of a group.
func (p *Palette) Group(name string) []uint32 {
	return p.groups[name]
}

// GroupNames returns every group name in sorted order.
func (p *Palette) GroupNames() []string {
	out := make([]string, 0, len(p.groups))
	for g := range p.groups {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Resolve maps a reference to its index. Name, group and position
// references must be assigned; an index reference resolves to itself
// regardless of occupancy.
func (p *Palette) Resolve(ref cell.Ref) (uint32, error) {
	switch ref.Kind {
	case cell.RefIndex:
		return ref.Index, nil

	case cell.RefName:
		if idx, ok := p.names.Get(ref.Name); ok {
			return idx, nil
		}
		return 0, &UnknownRefError{Ref: ref, Suggestion: p.suggestName(ref.Name)}

	case cell.RefGroup:
		members := p.groups[ref.Name]
		if int(ref.GroupIdx) < len(members) {
			return members[ref.GroupIdx], nil
		}
		return 0, &UnknownRefError{Ref: ref, Suggestion: p.suggestGroup(ref.Name)}

	default:
		if idx, ok := p.positions.Get(ref.Pos); ok {
			return idx, nil
		}
		return 0, &UnknownRefError{Ref: ref}
	}
}

// suggestName returns the closest assigned name to a failed lookup.
func (p *Palette) suggestName(name string) string {
	names := make([]string, 0, p.names.Len())
	for n := range p.names.Forward() {
		names = append(names, n)
	}
	sort.Strings(names)
	if matches := fuzzy.RankFindNormalizedFold(name, names); len(matches) > 0 {
		sort.Sort(matches)
		return matches[0].Target
	}
	return ""
}

func (p *Palette) suggestGroup(name string) string {
	if matches := fuzzy.RankFindNormalizedFold(name, p.GroupNames()); len(matches) > 0 {
		sort.Sort(matches)
		return matches[0].Target
	}
	return ""
}

// ColorAt implements expr.Resolver: it resolves a reference, guards against
// cycles on the current evaluation path, and evaluates the cell expression.
func (p *Palette) ColorAt(ref cell.Ref, visited *expr.VisitSet) (mo.Option[color.Color], error) {
	idx, err := p.Resolve(ref)
	if err != nil {
		return mo.None[color.Color](), err
	}
	if !visited.Enter(idx) {
		return mo.None[color.Color](), &CycleError{Path: append(visited.Path(), idx)}
	}
	e, ok := p.cells[idx]
	if !ok {
		return mo.None[color.Color](), &NotOccupiedError{Idx: idx}
	}
	return e.Eval(p, visited)
}

// Color resolves and evaluates a reference with a fresh visit set.
func (p *Palette) Color(ref cell.Ref) (mo.Option[color.Color], error) {
	return p.ColorAt(ref, expr.NewVisitSet())
}

// FreeIndex returns the lowest unoccupied index at or above from.
func (p *Palette) FreeIndex(from uint32) uint32 {
	idx := from
	for p.IsOccupied(idx) {
		idx++
	}
	return idx
}

// Select resolves a selection to the matching occupied indices in
// ascending order.
func (p *Palette) Select(sel cell.Selection) ([]uint32, error) {
	switch sel.Kind {
	case cell.SelectAll:
		return p.Indices(), nil

	case cell.SelectSingle:
		idx, err := p.Resolve(sel.Single)
		if err != nil {
			return nil, err
		}
		if !p.IsOccupied(idx) {
			return nil, &NotOccupiedError{Idx: idx}
		}
		return []uint32{idx}, nil

	case cell.SelectPattern:
		var out []uint32
		for pos, idx := range p.positions.Forward() {
			if sel.Selector.Matches(pos) && p.IsOccupied(idx) {
				out = append(out, idx)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		return out, nil

	default:
		low, err := p.Resolve(sel.Low)
		if err != nil {
			return nil, err
		}
		hi, err := p.Resolve(sel.Hi)
		if err != nil {
			return nil, err
		}
		if low > hi {
			low, hi = hi, low
		}
		var out []uint32
		for _, idx := range p.Indices() {
			if idx >= low && idx <= hi {
				out = append(out, idx)
			}
		}
		return out, nil
	}
}

// Clone deep-copies the palette state, excluding the history.
func (p *Palette) Clone() *Palette {
	c := &Palette{
		cells:     make(map[uint32]expr.Expr, len(p.cells)),
		names:     p.names.Clone(),
		positions: p.positions.Clone(),
		groups:    make(map[string][]uint32, len(p.groups)),
		cursor:    p.cursor,
		limits:    p.limits,
		history:   NewHistory(),
	}
	for idx, e := range p.cells {
		c.cells[idx] = e
	}
	for g, members := range p.groups {
		c.groups[g] = append([]uint32(nil), members...)
	}
	return c
}

// Equal reports whether two palettes hold identical cells, metadata and
// cursor. History shape is not compared.
func (p *Palette) Equal(o *Palette) bool {
	if p.cursor != o.cursor || len(p.cells) != len(o.cells) {
		return false
	}
	for idx, e := range p.cells {
		oe, ok := o.cells[idx]
		if !ok || e != oe {
			return false
		}
	}
	if p.names.Len() != o.names.Len() || p.positions.Len() != o.positions.Len() {
		return false
	}
	for n, idx := range p.names.Forward() {
		if oidx, ok := o.names.Get(n); !ok || oidx != idx {
			return false
		}
	}
	for pos, idx := range p.positions.Forward() {
		if oidx, ok := o.positions.Get(pos); !ok || oidx != idx {
			return false
		}
	}
	if len(p.groups) != len(o.groups) {
		return false
	}
	for g, members := range p.groups {
		omembers, ok := o.groups[g]
		if !ok || len(members) != len(omembers) {
			return false
		}
		for i := range members {
			if members[i] != omembers[i] {
				return false
			}
		}
	}
	return true
}
