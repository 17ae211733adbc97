// Package expr defines the expressions stored in palette cells, the
// insertable objects they are built from, and their evaluation against a
// cell resolver.
package expr

import (
	"fmt"
	"strconv"

	"github.com/atma-cli/atma/color"
)

// CurveKind discriminates interpolation curves.
type CurveKind uint8

const (
	Linear CurveKind = iota
	Cubic
)

// Curve reparameterizes an interpolation parameter. Cubic curves are 1-D
// Bézier curves through (0, P1, P2, 1); the default control points (0, 1)
// give the familiar smoothstep easing.
type Curve struct {
	Kind   CurveKind
	P1, P2 float64
}

// LinearCurve is the identity reparameterization.
var LinearCurve = Curve{Kind: Linear}

// DefaultCubic is the cubic curve with default control points.
var DefaultCubic = Curve{Kind: Cubic, P1: 0, P2: 1}

// Apply reparameterizes t through the curve.
func (c Curve) Apply(t float64) float64 {
	if c.Kind == Linear {
		return t
	}
	u := 1 - t
	return 3*u*u*t*c.P1 + 3*u*t*t*c.P2 + t*t*t
}

// Interpolate blends two colors by a fixed parameter, optionally
// reparameterized through a curve, in a chosen color space.
type Interpolate struct {
	Curve Curve
	T     float64
	Space color.Space
}

// DefaultInterpolate fully applies the second color: linear, t=1, RGB.
var DefaultInterpolate = Interpolate{Curve: LinearCurve, T: 1, Space: color.RGB}

// ConstantT builds a plain linear RGB interpolation by t.
func ConstantT(t float64) Interpolate {
	return Interpolate{Curve: LinearCurve, T: t, Space: color.RGB}
}

// Apply interpolates from a to b.
func (in Interpolate) Apply(a, b color.Color) color.Color {
	return in.Space.Lerp(a, b, in.Curve.Apply(in.T))
}

// Validate checks that the parameter lies in [0, 1].
func (in Interpolate) Validate() error {
	if in.T < 0 || in.T > 1 {
		return fmt.Errorf("interpolate value %v must lie within the range [0.0, 1.0]", in.T)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String returns the canonical interpolate form. A plain linear RGB
// interpolation prints as its bare parameter.
func (in Interpolate) String() string {
	if in.Curve.Kind == Linear && in.Space == color.RGB {
		return formatFloat(in.T)
	}
	switch {
	case in.Curve.Kind == Linear:
		return fmt.Sprintf("linear(%s, %s)", formatFloat(in.T), in.Space)
	case in.Curve == DefaultCubic:
		if in.Space == color.RGB {
			return fmt.Sprintf("cubic(%s)", formatFloat(in.T))
		}
		return fmt.Sprintf("cubic(%s, %s)", formatFloat(in.T), in.Space)
	default:
		if in.Space == color.RGB {
			return fmt.Sprintf("cubic(%s, %s)(%s)",
				formatFloat(in.Curve.P1), formatFloat(in.Curve.P2), formatFloat(in.T))
		}
		return fmt.Sprintf("cubic(%s, %s)(%s, %s)",
			formatFloat(in.Curve.P1), formatFloat(in.Curve.P2), formatFloat(in.T), in.Space)
	}
}

// Range distributes interpolation parameters across ramp children.
type Range struct {
	Curve      Curve
	Start, End float64
	Space      color.Space
}

// DefaultRange spans [0, 1] linearly in RGB.
var DefaultRange = Range{Curve: LinearCurve, Start: 0, End: 1, Space: color.RGB}

// Remap maps a unit parameter onto the range span.
func (r Range) Remap(u float64) float64 {
	return r.Start + u*(r.End-r.Start)
}

// At builds the Interpolate for a ramp child at unit parameter u.
func (r Range) At(u float64) Interpolate {
	return Interpolate{Curve: r.Curve, T: r.Remap(u), Space: r.Space}
}

// Validate checks that both endpoints lie in [0, 1].
func (r Range) Validate() error {
	if r.Start < 0 || r.Start > 1 {
		return fmt.Errorf("interpolate start value %v must lie within the range [0.0, 1.0]", r.Start)
	}
	if r.End < 0 || r.End > 1 {
		return fmt.Errorf("interpolate end value %v must lie within the range [0.0, 1.0]", r.End)
	}
	return nil
}

// String returns the canonical range form.
func (r Range) String() string {
	name := "linear"
	if r.Curve.Kind == Cubic {
		name = "cubic"
	}
	span := r.Start != 0 || r.End != 1
	custom := r.Curve.Kind == Cubic && r.Curve != DefaultCubic

	switch {
	case !span && !custom && r.Space == color.RGB:
		return name
	case custom:
		if r.Space == color.RGB {
			return fmt.Sprintf("%s([%s,%s], [%s,%s])", name,
				formatFloat(r.Start), formatFloat(r.End),
				formatFloat(r.Curve.P1), formatFloat(r.Curve.P2))
		}
		return fmt.Sprintf("%s([%s,%s], [%s,%s], %s)", name,
			formatFloat(r.Start), formatFloat(r.End),
			formatFloat(r.Curve.P1), formatFloat(r.Curve.P2), r.Space)
	default:
		if r.Space == color.RGB {
			return fmt.Sprintf("%s([%s,%s])", name, formatFloat(r.Start), formatFloat(r.End))
		}
		return fmt.Sprintf("%s([%s,%s], %s)", name, formatFloat(r.Start), formatFloat(r.End), r.Space)
	}
}
