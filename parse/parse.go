// Package parse implements the parser combinator framework and the grammars
// for cell references, selections, colors and insertable expressions.
//
// A parser is a function from an input string to a Success carrying the
// parsed value, the consumed token and the residual input, or a Failure
// describing what was expected. Parsers never mutate their input; callers
// backtrack by reusing the slice they passed in. Failure chains are only
// materialized when an error propagates past a Context wrapper.
package parse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/mo"
)

// Success is the result of a successful parse.
type Success[T any] struct {
	// Value is the parsed value.
	Value T
	// Token is the input consumed by the parser.
	Token string
	// Rest is the input following the consumed token.
	Rest string
}

// Failure describes a failed parse. Source chains the causing failure, so
// failures form a tree rooted at the outermost context.
type Failure struct {
	Context  string
	Expected string
	Source   *Failure
	Rest     string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	var b strings.Builder
	if f.Context != "" {
		fmt.Fprintf(&b, "in %s: ", f.Context)
	}
	fmt.Fprintf(&b, "expected %s", f.Expected)
	if f.Source != nil {
		fmt.Fprintf(&b, ": %s", f.Source.Error())
	}
	return b.String()
}

// Offset returns the byte offset of the failure within the original input.
// The failure's residual is always a suffix of the input it was parsed from.
func (f *Failure) Offset(input string) int {
	return len(input) - len(f.Rest)
}

// Parser consumes a prefix of its input and produces a T.
type Parser[T any] func(text string) (Success[T], *Failure)

// fail constructs a leaf failure.
func fail(expected, rest string) *Failure {
	return &Failure{Expected: expected, Rest: rest}
}

// succeed constructs a Success for the consumed prefix of input.
func succeed[T any](value T, input, rest string) (Success[T], *Failure) {
	return Success[T]{Value: value, Token: input[:len(input)-len(rest)], Rest: rest}, nil
}

// Context wraps a parser with a named grammar context. A propagating failure
// is nested under a new failure labeled with the context name; successes pass
// through untouched, so no allocation happens on the hot path.
func Context[T any](name string, p Parser[T]) Parser[T] {
	return func(text string) (Success[T], *Failure) {
		s, f := p(text)
		if f == nil {
			return s, nil
		}
		return s, &Failure{Context: name, Expected: f.Expected, Source: f, Rest: f.Rest}
	}
}

// Map transforms the value of a successful parse.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(text string) (Success[U], *Failure) {
		s, err := p(text)
		if err != nil {
			return Success[U]{}, err
		}
		return Success[U]{Value: f(s.Value), Token: s.Token, Rest: s.Rest}, nil
	}
}

// Maybe makes a parser optional. A failed attempt consumes nothing and
// yields None.
func Maybe[T any](p Parser[T]) Parser[mo.Option[T]] {
	return func(text string) (Success[mo.Option[T]], *Failure) {
		s, err := p(text)
		if err != nil {
			return Success[mo.Option[T]]{Value: mo.None[T](), Rest: text}, nil
		}
		return Success[mo.Option[T]]{Value: mo.Some(s.Value), Token: s.Token, Rest: s.Rest}, nil
	}
}

// Or tries each parser in turn, returning the first success. On total
// failure the failure of the parser that consumed the most input wins.
func Or[T any](parsers ...Parser[T]) Parser[T] {
	return func(text string) (Success[T], *Failure) {
		var deepest *Failure
		for _, p := range parsers {
			s, f := p(text)
			if f == nil {
				return s, nil
			}
			if deepest == nil || len(f.Rest) < len(deepest.Rest) {
				deepest = f
			}
		}
		return Success[T]{}, deepest
	}
}

// SkipWs returns the input with leading whitespace removed.
func SkipWs(text string) string {
	return strings.TrimLeftFunc(text, unicode.IsSpace)
}

// eat consumes a literal prefix after skipping leading whitespace.
func eat(text, prefix string) (string, bool) {
	rest := SkipWs(text)
	if strings.HasPrefix(rest, prefix) {
		return rest[len(prefix):], true
	}
	return text, false
}

// Literal parses an exact string, skipping leading whitespace.
func Literal(want string) Parser[string] {
	return func(text string) (Success[string], *Failure) {
		rest, ok := eat(text, want)
		if !ok {
			return Success[string]{}, fail(fmt.Sprintf("%q", want), SkipWs(text))
		}
		return succeed(want, text, rest)
	}
}

// Keyword parses an exact word that must not be followed by a name rune,
// so "linear" does not match the prefix of "linearx".
func Keyword(want string) Parser[string] {
	return func(text string) (Success[string], *Failure) {
		rest, ok := eat(text, want)
		if !ok || (len(rest) > 0 && isNameRune(rune(rest[0]))) {
			return Success[string]{}, fail(fmt.Sprintf("%q", want), SkipWs(text))
		}
		return succeed(want, text, rest)
	}
}
