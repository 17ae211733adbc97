package parse

import (
	"strings"

	"github.com/atma-cli/atma/cell"
)

// nameToken parses a run of name runes.
func nameToken(text string) (Success[string], *Failure) {
	rest := SkipWs(text)
	i := 0
	for i < len(rest) {
		r := rune(rest[i])
		if rest[i] >= 0x80 {
			// Multi-byte runes are always name runes here; the exclusion
			// set is pure ASCII.
			i++
			continue
		}
		if !isNameRune(r) {
			break
		}
		i++
	}
	if i == 0 {
		return Success[string]{}, fail("name", rest)
	}
	return succeed(rest[:i], text, rest[i:])
}

// uint32Token narrows Uint to the 32-bit index domain.
func uint32Token(text string) (Success[uint32], *Failure) {
	s, f := Uint(text)
	if f != nil {
		return Success[uint32]{}, f
	}
	return Success[uint32]{Value: uint32(s.Value), Token: s.Token, Rest: s.Rest}, nil
}

// uint16Token narrows Uint to the position component domain.
func uint16Token(text string) (Success[uint16], *Failure) {
	s, f := Uint(text)
	if f != nil {
		return Success[uint16]{}, f
	}
	if s.Value > 0xFFFF {
		return Success[uint16]{}, fail("position component in range", SkipWs(text))
	}
	return Success[uint16]{Value: uint16(s.Value), Token: s.Token, Rest: s.Rest}, nil
}

// CellRef parses a cell reference: ":3", ":1.2.3", "name" or "name:2".
// Position components must be concrete; wildcards belong to selections.
func CellRef(text string) (Success[cell.Ref], *Failure) {
	rest := SkipWs(text)

	if after, ok := eat(rest, ":"); ok {
		idx, f := uint32Token(after)
		if f != nil {
			return Success[cell.Ref]{}, &Failure{Context: "cell reference", Expected: "index", Source: f, Rest: f.Rest}
		}
		if after2, ok := eat(idx.Rest, "."); ok {
			line, f := uint16Token(after2)
			if f != nil {
				return Success[cell.Ref]{}, f
			}
			after3, ok := eat(line.Rest, ".")
			if !ok {
				return Success[cell.Ref]{}, fail(`"."`, SkipWs(line.Rest))
			}
			col, f := uint16Token(after3)
			if f != nil {
				return Success[cell.Ref]{}, f
			}
			if idx.Value > 0xFFFF {
				return Success[cell.Ref]{}, fail("position page in range", rest)
			}
			pos := cell.Position{Page: uint16(idx.Value), Line: line.Value, Column: col.Value}
			return succeed(cell.At(pos), text, col.Rest)
		}
		return succeed(cell.Index(idx.Value), text, idx.Rest)
	}

	name, f := nameToken(rest)
	if f != nil {
		return Success[cell.Ref]{}, &Failure{Context: "cell reference", Expected: "index, position or name", Source: f, Rest: f.Rest}
	}
	if after, ok := eat(name.Rest, ":"); ok {
		idx, f := uint32Token(after)
		if f != nil {
			return Success[cell.Ref]{}, f
		}
		return succeed(cell.Group(name.Value, idx.Value), text, idx.Rest)
	}
	return succeed(cell.Name(name.Value), text, name.Rest)
}

// selectorComponent parses one position pattern component: an integer or '*'.
func selectorComponent(text string) (Success[cell.SelectorComponent], *Failure) {
	if rest, ok := eat(text, "*"); ok {
		return succeed(cell.AnyComponent, text, rest)
	}
	v, f := uint16Token(text)
	if f != nil {
		return Success[cell.SelectorComponent]{}, fail(`position component or "*"`, SkipWs(text))
	}
	return succeed(cell.Concrete(v.Value), text, v.Rest)
}

// positionSelector parses ":page.line.column" where each component may be '*'.
func positionSelector(text string) (Success[cell.Selector], *Failure) {
	rest, ok := eat(text, ":")
	if !ok {
		return Success[cell.Selector]{}, fail(`":"`, SkipWs(text))
	}
	page, f := selectorComponent(rest)
	if f != nil {
		return Success[cell.Selector]{}, f
	}
	rest, ok = eat(page.Rest, ".")
	if !ok {
		return Success[cell.Selector]{}, fail(`"."`, SkipWs(page.Rest))
	}
	line, f := selectorComponent(rest)
	if f != nil {
		return Success[cell.Selector]{}, f
	}
	rest, ok = eat(line.Rest, ".")
	if !ok {
		return Success[cell.Selector]{}, fail(`"."`, SkipWs(line.Rest))
	}
	col, f := selectorComponent(rest)
	if f != nil {
		return Success[cell.Selector]{}, f
	}
	sel := cell.Selector{Page: page.Value, Line: line.Value, Column: col.Value}
	return succeed(sel, text, col.Rest)
}

// Selection parses "*", ":*", a position pattern, a single reference or an
// inclusive reference range.
func Selection(text string) (Success[cell.Selection], *Failure) {
	rest := SkipWs(text)

	if after, ok := eat(rest, "*"); ok {
		return succeed(cell.All(), text, after)
	}
	if strings.HasPrefix(rest, ":*") && !strings.HasPrefix(rest, ":*.") {
		return succeed(cell.All(), text, rest[2:])
	}

	// A pattern with any wildcard component; concrete triples fall through
	// to CellRef so ranges over positions still parse.
	if sel, f := positionSelector(rest); f == nil && !sel.Value.IsConcrete() {
		return succeed(cell.Pattern(sel.Value), text, sel.Rest)
	}

	low, f := CellRef(rest)
	if f != nil {
		return Success[cell.Selection]{}, &Failure{Context: "selection", Expected: "selection", Source: f, Rest: f.Rest}
	}
	// A doubled '-' opens a flag such as "--to", not a range.
	if after, ok := eat(low.Rest, "-"); ok && !strings.HasPrefix(after, "-") {
		hi, f := CellRef(after)
		if f != nil {
			return Success[cell.Selection]{}, f
		}
		sel, err := cell.Range(low.Value, hi.Value)
		if err != nil {
			return Success[cell.Selection]{}, fail("matching range endpoints", SkipWs(rest))
		}
		return succeed(sel, text, hi.Rest)
	}
	return succeed(cell.Single(low.Value), text, low.Rest)
}
