package parse

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUint(t *testing.T) {
	Convey("Decimal integers", t, func() {
		s, f := Uint("42 rest")
		So(f, ShouldBeNil)
		So(s.Value, ShouldEqual, 42)
		So(s.Token, ShouldEqual, "42")
		So(s.Rest, ShouldEqual, " rest")
	})

	Convey("Radix prefixes", t, func() {
		for input, want := range map[string]uint64{
			"0b1010": 10,
			"0o17":   15,
			"0xFF":   255,
			"0x1_F":  31,
			"1_000":  1000,
		} {
			s, f := Uint(input)
			So(f, ShouldBeNil)
			So(s.Value, ShouldEqual, want)
		}
	})

	Convey("Failures keep the residual input", t, func() {
		_, f := Uint("abc")
		So(f, ShouldNotBeNil)
		So(f.Rest, ShouldEqual, "abc")
	})

	Convey("Out-of-range values fail", t, func() {
		_, f := Uint("4294967296")
		So(f, ShouldNotBeNil)
	})
}

func TestFloat(t *testing.T) {
	Convey("Float forms", t, func() {
		for input, want := range map[string]float64{
			"0.5":    0.5,
			"1":      1,
			".25":    0.25,
			"-0.5":   -0.5,
			"1e2":    100,
			"2.5e-1": 0.25,
		} {
			s, f := Float(input)
			So(f, ShouldBeNil)
			So(s.Value, ShouldEqual, want)
		}

		_, f := Float("x")
		So(f, ShouldNotBeNil)
	})
}

func TestQuotedString(t *testing.T) {
	Convey("Quoted strings", t, func() {
		s, f := QuotedString(`"hello \"there\"" rest`)
		So(f, ShouldBeNil)
		So(s.Value, ShouldEqual, `hello "there"`)
		So(s.Rest, ShouldEqual, " rest")

		_, f = QuotedString(`"unterminated`)
		So(f, ShouldNotBeNil)
	})
}

func TestComments(t *testing.T) {
	Convey("Line comments", t, func() {
		s, f := LineComment("#")("# note\nrest")
		So(f, ShouldBeNil)
		So(s.Value, ShouldEqual, " note")
		So(s.Rest, ShouldEqual, "rest")
	})

	Convey("Block comments", t, func() {
		s, f := BlockComment("/*", "*/")("/* note */rest")
		So(f, ShouldBeNil)
		So(s.Value, ShouldEqual, " note ")
		So(s.Rest, ShouldEqual, "rest")
	})
}

func TestBracketed(t *testing.T) {
	Convey("Bracketed lists", t, func() {
		p := Bracketed("[", "]", ",", Parser[float64](Float))

		s, f := p("[0.25, 0.75]")
		So(f, ShouldBeNil)
		So(s.Value, ShouldResemble, []float64{0.25, 0.75})

		s, f = p("[]")
		So(f, ShouldBeNil)
		So(len(s.Value), ShouldEqual, 0)

		_, f = p("[0.25")
		So(f, ShouldNotBeNil)
	})
}

func TestContext(t *testing.T) {
	Convey("Context nests failures only on propagation", t, func() {
		p := Context("outer", Parser[uint64](Uint))

		_, f := p("nope")
		So(f, ShouldNotBeNil)
		So(f.Context, ShouldEqual, "outer")
		So(f.Source, ShouldNotBeNil)
		So(f.Source.Expected, ShouldEqual, "integer")

		s, f := p("3")
		So(f, ShouldBeNil)
		So(s.Value, ShouldEqual, 3)
	})

	Convey("Failures are equality comparable", t, func() {
		_, f1 := Uint("abc")
		_, f2 := Uint("abc")
		So(*f1, ShouldResemble, *f2)
	})
}

func TestLexer(t *testing.T) {
	Convey("Tagged spans", t, func() {
		tokens := Lex("insert #FF0000 ; # trailing\n:3")
		kinds := make([]TokenKind, 0, len(tokens))
		for _, tok := range tokens {
			kinds = append(kinds, tok.Kind)
		}
		So(kinds, ShouldResemble, []TokenKind{
			TokenIdent, TokenWhitespace, TokenNumber, TokenWhitespace,
			TokenPunct, TokenWhitespace, TokenComment, TokenWhitespace,
			TokenPunct, TokenNumber,
		})
	})

	Convey("Offsets index the original input", t, func() {
		tokens := Lex("a #x")
		So(tokens[0].Offset, ShouldEqual, 0)
		So(tokens[2].Offset, ShouldEqual, 2)
	})

	Convey("Filters compose", t, func() {
		tokens := Lex("a # c\n b")
		filtered := Compose(DropWhitespace, DropComments)(tokens)
		So(len(filtered), ShouldEqual, 2)
		So(filtered[0].Text, ShouldEqual, "a")
		So(filtered[1].Text, ShouldEqual, "b")
	})

	Convey("Short hex literals lex as numbers, not comments", t, func() {
		tokens := Lex("#FFF")
		So(tokens[0].Kind, ShouldEqual, TokenNumber)
	})
}
