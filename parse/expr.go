package parse

import (
	"github.com/atma-cli/atma/color"
	"github.com/atma-cli/atma/expr"
)

// space parses a color space keyword.
func space(text string) (Success[color.Space], *Failure) {
	rest := SkipWs(text)
	name, f := nameToken(rest)
	if f != nil {
		return Success[color.Space]{}, fail("color space", rest)
	}
	sp, err := color.ParseSpace(name.Value)
	if err != nil {
		return Success[color.Space]{}, fail("color space", rest)
	}
	return succeed(sp, text, name.Rest)
}

// Interpolate parses a bare parameter, "linear(t[, space])", "cubic(t[, space])"
// or the curried "cubic(p1, p2)(t[, space])" form.
func Interpolate(text string) (Success[expr.Interpolate], *Failure) {
	rest := SkipWs(text)

	if kw, f := Keyword("linear")(rest); f == nil {
		t, sp, after, f := interpArgs(kw.Rest)
		if f != nil {
			return Success[expr.Interpolate]{}, f
		}
		return succeed(expr.Interpolate{Curve: expr.LinearCurve, T: t, Space: sp}, text, after)
	}

	if kw, f := Keyword("cubic")(rest); f == nil {
		after, ok := eat(kw.Rest, "(")
		if !ok {
			return Success[expr.Interpolate]{}, fail(`"("`, SkipWs(kw.Rest))
		}
		first, f := Float(after)
		if f != nil {
			return Success[expr.Interpolate]{}, f
		}
		if after2, ok := eat(first.Rest, ","); ok {
			if second, f := Float(after2); f == nil {
				if after3, ok := eat(second.Rest, ")"); ok {
					// Two floats: control points, so a second argument
					// group must carry the parameter.
					curve := expr.Curve{Kind: expr.Cubic, P1: first.Value, P2: second.Value}
					t, sp, after4, f := interpArgs(after3)
					if f != nil {
						return Success[expr.Interpolate]{}, f
					}
					return succeed(expr.Interpolate{Curve: curve, T: t, Space: sp}, text, after4)
				}
			}
			// One float then a space keyword.
			sp, f := space(after2)
			if f != nil {
				return Success[expr.Interpolate]{}, fail("control point or color space", SkipWs(after2))
			}
			after3, ok := eat(sp.Rest, ")")
			if !ok {
				return Success[expr.Interpolate]{}, fail(`")"`, SkipWs(sp.Rest))
			}
			return succeed(expr.Interpolate{Curve: expr.DefaultCubic, T: first.Value, Space: sp.Value}, text, after3)
		}
		after2, ok := eat(first.Rest, ")")
		if !ok {
			return Success[expr.Interpolate]{}, fail(`")"`, SkipWs(first.Rest))
		}
		return succeed(expr.Interpolate{Curve: expr.DefaultCubic, T: first.Value, Space: color.RGB}, text, after2)
	}

	t, f := Float(rest)
	if f != nil {
		return Success[expr.Interpolate]{}, &Failure{Context: "interpolate", Expected: "interpolation", Source: f, Rest: f.Rest}
	}
	return succeed(expr.ConstantT(t.Value), text, t.Rest)
}

// interpArgs parses "(t[, space])".
func interpArgs(text string) (t float64, sp color.Space, rest string, f *Failure) {
	sp = color.RGB
	after, ok := eat(text, "(")
	if !ok {
		return 0, sp, "", fail(`"("`, SkipWs(text))
	}
	tv, ff := Float(after)
	if ff != nil {
		return 0, sp, "", ff
	}
	after = tv.Rest
	if after2, ok := eat(after, ","); ok {
		spv, ff := space(after2)
		if ff != nil {
			return 0, sp, "", ff
		}
		sp = spv.Value
		after = spv.Rest
	}
	after, ok = eat(after, ")")
	if !ok {
		return 0, sp, "", fail(`")"`, SkipWs(after))
	}
	return tv.Value, sp, after, nil
}

// InterpolateRange parses "linear", "cubic", "linear([a,b][, space])" or
// "cubic([a,b][, [c,d]][, space])".
func InterpolateRange(text string) (Success[expr.Range], *Failure) {
	rest := SkipWs(text)

	kind := expr.Linear
	kw, f := Keyword("linear")(rest)
	if f != nil {
		kw, f = Keyword("cubic")(rest)
		if f != nil {
			return Success[expr.Range]{}, fail(`"linear" or "cubic"`, rest)
		}
		kind = expr.Cubic
	}

	r := expr.DefaultRange
	if kind == expr.Cubic {
		r.Curve = expr.DefaultCubic
	}

	after, ok := eat(kw.Rest, "(")
	if !ok {
		return succeed(r, text, kw.Rest)
	}

	span, f := Bracketed("[", "]", ",", Parser[float64](Float))(after)
	if f != nil {
		return Success[expr.Range]{}, f
	}
	if len(span.Value) != 2 {
		return Success[expr.Range]{}, fail("range endpoints [a,b]", SkipWs(after))
	}
	r.Start, r.End = span.Value[0], span.Value[1]
	after = span.Rest

	if after2, ok := eat(after, ","); ok {
		if kind == expr.Cubic {
			if points, f := Bracketed("[", "]", ",", Parser[float64](Float))(after2); f == nil {
				if len(points.Value) != 2 {
					return Success[expr.Range]{}, fail("control points [c,d]", SkipWs(after2))
				}
				r.Curve = expr.Curve{Kind: expr.Cubic, P1: points.Value[0], P2: points.Value[1]}
				after = points.Rest
				if after3, ok := eat(after, ","); ok {
					after2 = after3
				} else {
					after2 = ""
				}
			}
		}
		if after2 != "" {
			sp, f := space(after2)
			if f != nil {
				return Success[expr.Range]{}, f
			}
			r.Space = sp.Value
			after = sp.Rest
		}
	}

	after, ok = eat(after, ")")
	if !ok {
		return Success[expr.Range]{}, fail(`")"`, SkipWs(after))
	}
	return succeed(r, text, after)
}

// binaryCall parses "op(ref, ref[, interpolate][, space])".
func binaryCall(text string) (Success[expr.Binary], *Failure) {
	rest := SkipWs(text)
	name, f := nameToken(rest)
	if f != nil {
		return Success[expr.Binary]{}, fail("binary blend", rest)
	}
	op, err := color.ParseBinaryMethod(name.Value)
	if err != nil {
		return Success[expr.Binary]{}, fail("binary blend", rest)
	}

	after, ok := eat(name.Rest, "(")
	if !ok {
		return Success[expr.Binary]{}, fail(`"("`, SkipWs(name.Rest))
	}
	arg0, f := CellRef(after)
	if f != nil {
		return Success[expr.Binary]{}, f
	}
	after, ok = eat(arg0.Rest, ",")
	if !ok {
		return Success[expr.Binary]{}, fail(`","`, SkipWs(arg0.Rest))
	}
	arg1, f := CellRef(after)
	if f != nil {
		return Success[expr.Binary]{}, f
	}
	after = arg1.Rest

	b := expr.Binary{Op: op, Arg0: arg0.Value, Arg1: arg1.Value,
		Interp: expr.DefaultInterpolate, Space: color.RGB}

	if after2, ok := eat(after, ","); ok {
		if in, f := Interpolate(after2); f == nil {
			b.Interp = in.Value
			after = in.Rest
			if after3, ok := eat(after, ","); ok {
				sp, f := space(after3)
				if f != nil {
					return Success[expr.Binary]{}, f
				}
				b.Space = sp.Value
				after = sp.Rest
			}
		} else {
			sp, f := space(after2)
			if f != nil {
				return Success[expr.Binary]{}, fail("interpolation or color space", SkipWs(after2))
			}
			b.Space = sp.Value
			after = sp.Rest
		}
	}

	after, ok = eat(after, ")")
	if !ok {
		return Success[expr.Binary]{}, fail(`")"`, SkipWs(after))
	}
	return succeed(b, text, after)
}

// unaryCall parses "op(ref, value[, interpolate])".
func unaryCall(text string) (Success[expr.Unary], *Failure) {
	rest := SkipWs(text)
	name, f := nameToken(rest)
	if f != nil {
		return Success[expr.Unary]{}, fail("unary blend", rest)
	}
	op, err := color.ParseUnaryMethod(name.Value)
	if err != nil {
		return Success[expr.Unary]{}, fail("unary blend", rest)
	}

	after, ok := eat(name.Rest, "(")
	if !ok {
		return Success[expr.Unary]{}, fail(`"("`, SkipWs(name.Rest))
	}
	arg, f := CellRef(after)
	if f != nil {
		return Success[expr.Unary]{}, f
	}
	after, ok = eat(arg.Rest, ",")
	if !ok {
		return Success[expr.Unary]{}, fail(`","`, SkipWs(arg.Rest))
	}
	value, f := Float(after)
	if f != nil {
		return Success[expr.Unary]{}, f
	}
	after = value.Rest

	u := expr.Unary{Op: op, Arg: arg.Value, Value: value.Value, Interp: expr.DefaultInterpolate}

	if after2, ok := eat(after, ","); ok {
		in, f := Interpolate(after2)
		if f != nil {
			return Success[expr.Unary]{}, f
		}
		u.Interp = in.Value
		after = in.Rest
	}

	after, ok = eat(after, ")")
	if !ok {
		return Success[expr.Unary]{}, fail(`")"`, SkipWs(after))
	}
	return succeed(u, text, after)
}

// rampCall parses "ramp(count, binary[, range])".
func rampCall(text string) (Success[expr.Ramp], *Failure) {
	rest := SkipWs(text)
	kw, f := Keyword("ramp")(rest)
	if f != nil {
		return Success[expr.Ramp]{}, f
	}
	after, ok := eat(kw.Rest, "(")
	if !ok {
		return Success[expr.Ramp]{}, fail(`"("`, SkipWs(kw.Rest))
	}
	count, f := Uint(after)
	if f != nil {
		return Success[expr.Ramp]{}, f
	}
	if count.Value == 0 || count.Value > 0xFF {
		return Success[expr.Ramp]{}, fail("ramp count in range", SkipWs(after))
	}
	after, ok = eat(count.Rest, ",")
	if !ok {
		return Success[expr.Ramp]{}, fail(`","`, SkipWs(count.Rest))
	}
	blend, f := binaryCall(after)
	if f != nil {
		return Success[expr.Ramp]{}, f
	}
	after = blend.Rest

	r := expr.Ramp{Count: uint8(count.Value), Blend: blend.Value, Range: expr.DefaultRange}
	// Any interpolate parsed inside the blend is overridden per child.
	r.Blend.Interp = expr.DefaultInterpolate

	if after2, ok := eat(after, ","); ok {
		rng, f := InterpolateRange(after2)
		if f != nil {
			return Success[expr.Ramp]{}, f
		}
		r.Range = rng.Value
		after = rng.Rest
	}

	after, ok = eat(after, ")")
	if !ok {
		return Success[expr.Ramp]{}, fail(`")"`, SkipWs(after))
	}
	return succeed(r, text, after)
}

// copyCall parses "copy(ref)".
func copyCall(text string) (Success[expr.Copy], *Failure) {
	rest := SkipWs(text)
	kw, f := Keyword("copy")(rest)
	if f != nil {
		return Success[expr.Copy]{}, f
	}
	after, ok := eat(kw.Rest, "(")
	if !ok {
		return Success[expr.Copy]{}, fail(`"("`, SkipWs(kw.Rest))
	}
	target, f := CellRef(after)
	if f != nil {
		return Success[expr.Copy]{}, f
	}
	after, ok = eat(target.Rest, ")")
	if !ok {
		return Success[expr.Copy]{}, fail(`")"`, SkipWs(target.Rest))
	}
	return succeed(expr.Copy{Target: target.Value}, text, after)
}

// InsertExpr parses any palette-insertable expression.
func InsertExpr(text string) (Success[expr.InsertExpr], *Failure) {
	rest := SkipWs(text)

	if kw, f := Keyword("empty")(rest); f == nil {
		return succeed[expr.InsertExpr](expr.Empty{}, text, kw.Rest)
	}
	if c, f := Color(rest); f == nil {
		return succeed[expr.InsertExpr](expr.Lit{Color: c.Value}, text, c.Rest)
	}
	if cp, f := copyCall(rest); f == nil {
		return succeed[expr.InsertExpr](cp.Value, text, cp.Rest)
	}
	if r, f := rampCall(rest); f == nil {
		return succeed[expr.InsertExpr](r.Value, text, r.Rest)
	}
	if u, f := unaryCall(rest); f == nil {
		return succeed[expr.InsertExpr](u.Value, text, u.Rest)
	}
	if b, f := binaryCall(rest); f == nil {
		return succeed[expr.InsertExpr](b.Value, text, b.Rest)
	}
	if after, ok := eat(rest, "("); ok {
		ref, f := CellRef(after)
		if f == nil {
			if after2, ok := eat(ref.Rest, ")"); ok {
				return succeed[expr.InsertExpr](expr.Reference{Target: ref.Value}, text, after2)
			}
		}
	}
	if ref, f := CellRef(rest); f == nil {
		return succeed[expr.InsertExpr](expr.Reference{Target: ref.Value}, text, ref.Rest)
	}
	return Success[expr.InsertExpr]{}, fail("insertable expression", rest)
}

// CellExpr parses an expression storable in a cell: any insertable form
// except copy and ramp, which only exist at insertion time.
func CellExpr(text string) (Success[expr.Expr], *Failure) {
	s, f := InsertExpr(text)
	if f != nil {
		return Success[expr.Expr]{}, f
	}
	e, ok := s.Value.(expr.Expr)
	if !ok {
		return Success[expr.Expr]{}, fail("cell expression", SkipWs(text))
	}
	return Success[expr.Expr]{Value: e, Token: s.Token, Rest: s.Rest}, nil
}
