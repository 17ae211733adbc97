package expr

import "github.com/atma-cli/atma/cell"

// Refs enumerates the cell references held by an expression.
func Refs(e Expr) []cell.Ref {
	switch v := e.(type) {
	case Reference:
		return []cell.Ref{v.Target}
	case Unary:
		return []cell.Ref{v.Arg}
	case Binary:
		return []cell.Ref{v.Arg0, v.Arg1}
	}
	return nil
}

// RewriteRefs returns the expression with every cell reference passed
// through f. Expressions without references are returned unchanged.
func RewriteRefs(e Expr, f func(cell.Ref) cell.Ref) Expr {
	switch v := e.(type) {
	case Reference:
		v.Target = f(v.Target)
		return v
	case Unary:
		v.Arg = f(v.Arg)
		return v
	case Binary:
		v.Arg0 = f(v.Arg0)
		v.Arg1 = f(v.Arg1)
		return v
	}
	return e
}
