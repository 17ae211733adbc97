package parse

import (
	"fmt"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/color"
	"github.com/atma-cli/atma/expr"
)

// finish requires a parser to consume its entire input, modulo trailing
// whitespace, and converts the result to the (value, error) convention used
// outside the combinator framework.
func finish[T any](input string, s Success[T], f *Failure) (T, error) {
	var zero T
	if f != nil {
		return zero, fmt.Errorf("parse error at offset %d: %w", f.Offset(input), f)
	}
	if rest := SkipWs(s.Rest); rest != "" {
		return zero, fmt.Errorf("parse error at offset %d: unexpected trailing input %q",
			len(input)-len(rest), rest)
	}
	return s.Value, nil
}

// ParseCellRef parses a complete cell reference.
func ParseCellRef(input string) (cell.Ref, error) {
	s, f := Context("cell reference", Parser[cell.Ref](CellRef))(input)
	return finish(input, s, f)
}

// ParseSelection parses a complete selection.
func ParseSelection(input string) (cell.Selection, error) {
	s, f := Context("selection", Parser[cell.Selection](Selection))(input)
	return finish(input, s, f)
}

// ParseColor parses a complete color literal.
func ParseColor(input string) (color.Color, error) {
	s, f := Color(input)
	return finish(input, s, f)
}

// ParseInsertExpr parses a complete insertable expression.
func ParseInsertExpr(input string) (expr.InsertExpr, error) {
	s, f := Context("insert expression", Parser[expr.InsertExpr](InsertExpr))(input)
	return finish(input, s, f)
}

// ParseCellExpr parses a complete cell-storable expression.
func ParseCellExpr(input string) (expr.Expr, error) {
	s, f := Context("cell expression", Parser[expr.Expr](CellExpr))(input)
	return finish(input, s, f)
}

// ParseInterpolate parses a complete interpolation.
func ParseInterpolate(input string) (expr.Interpolate, error) {
	s, f := Context("interpolate", Parser[expr.Interpolate](Interpolate))(input)
	return finish(input, s, f)
}

// ParseInterpolateRange parses a complete interpolation range.
func ParseInterpolateRange(input string) (expr.Range, error) {
	s, f := Context("interpolate range", Parser[expr.Range](InterpolateRange))(input)
	return finish(input, s, f)
}

// Word parses a run of name runes, skipping leading whitespace. It is the
// building block for command verbs and flag values.
func Word(text string) (Success[string], *Failure) {
	return nameToken(text)
}

// ParsePositionSelector parses a complete position pattern.
func ParsePositionSelector(input string) (cell.Selector, error) {
	s, f := Context("position selector", Parser[cell.Selector](positionSelector))(input)
	return finish(input, s, f)
}
