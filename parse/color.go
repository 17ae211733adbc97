package parse

import (
	"github.com/atma-cli/atma/color"
)

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// HexColor parses "#RRGGBB" or "#RGB"; the short form expands each nibble by
// duplication.
func HexColor(text string) (Success[color.Color], *Failure) {
	rest := SkipWs(text)
	if len(rest) == 0 || rest[0] != '#' {
		return Success[color.Color]{}, fail("hex color", rest)
	}
	body := rest[1:]
	n := 0
	var nibbles [6]uint8
	for n < 6 && n < len(body) {
		v, ok := hexNibble(body[n])
		if !ok {
			break
		}
		nibbles[n] = v
		n++
	}
	// A trailing hex digit means the literal is neither 3 nor 6 digits long.
	if n < len(body) {
		if _, ok := hexNibble(body[n]); ok {
			return Success[color.Color]{}, fail("3 or 6 hex digits", rest)
		}
	}
	switch n {
	case 3:
		c := color.Color{
			R: nibbles[0]<<4 | nibbles[0],
			G: nibbles[1]<<4 | nibbles[1],
			B: nibbles[2]<<4 | nibbles[2],
		}
		return succeed(c, text, body[3:])
	case 6:
		c := color.Color{
			R: nibbles[0]<<4 | nibbles[1],
			G: nibbles[2]<<4 | nibbles[3],
			B: nibbles[4]<<4 | nibbles[5],
		}
		return succeed(c, text, body[6:])
	}
	return Success[color.Color]{}, fail("3 or 6 hex digits", rest)
}

// floatArgs parses "(" f [, f]... ")" with exactly want components.
func floatArgs(text string, want int) (Success[[]float64], *Failure) {
	s, f := Bracketed("(", ")", ",", Parser[float64](Float))(text)
	if f != nil {
		return Success[[]float64]{}, f
	}
	if len(s.Value) != want {
		return Success[[]float64]{}, fail("color component list", SkipWs(text))
	}
	return s, nil
}

// FunctionalColor parses "rgb(...)", "hsl(...)", "hsv(...)", "cmyk(...)"
// and "xyz(...)" literals. Components are clamped at evaluation; hue wraps.
func FunctionalColor(text string) (Success[color.Color], *Failure) {
	rest := SkipWs(text)
	name, f := nameToken(rest)
	if f != nil {
		return Success[color.Color]{}, fail("color function", rest)
	}

	switch name.Value {
	case "rgb":
		args, f := floatArgs(name.Rest, 3)
		if f != nil {
			return Success[color.Color]{}, f
		}
		return succeed(color.FromRatios(args.Value[0], args.Value[1], args.Value[2]), text, args.Rest)
	case "hsl":
		args, f := floatArgs(name.Rest, 3)
		if f != nil {
			return Success[color.Color]{}, f
		}
		return succeed(color.FromHSL(args.Value[0], args.Value[1], args.Value[2]), text, args.Rest)
	case "hsv":
		args, f := floatArgs(name.Rest, 3)
		if f != nil {
			return Success[color.Color]{}, f
		}
		return succeed(color.FromHSV(args.Value[0], args.Value[1], args.Value[2]), text, args.Rest)
	case "xyz":
		args, f := floatArgs(name.Rest, 3)
		if f != nil {
			return Success[color.Color]{}, f
		}
		return succeed(color.FromXYZ(args.Value[0], args.Value[1], args.Value[2]), text, args.Rest)
	case "cmyk":
		args, f := floatArgs(name.Rest, 4)
		if f != nil {
			return Success[color.Color]{}, f
		}
		return succeed(color.FromCMYK(args.Value[0], args.Value[1], args.Value[2], args.Value[3]), text, args.Rest)
	}
	return Success[color.Color]{}, fail("color function", rest)
}

// Color parses any color literal form.
var Color = Context("color", Or(Parser[color.Color](HexColor), Parser[color.Color](FunctionalColor)))
