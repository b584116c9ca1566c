package lean

import (
	"fmt"
	"strings"

	"github.com/convexlab/go-cvxlean/pkg/ir"
)

// Operator precedence levels used to decide where parentheses are required.
// Parentheses are inserted only when a child binds more loosely than the
// position it occupies, matching conventional mathematical notation in Lean.
const (
	// Big operators (e.g. sums) swallow everything to their right.
	precBig = 5
	// Relational comparisons.
	precRelation = 10
	// Addition and subtraction.
	precAdd = 20
	// Multiplication and division.
	precMul = 30
	// Exponentiation.
	precPow = 40
	// Prefix negation (and negative literals), which Lean will not accept
	// as a bare operand of a tighter operator.
	precNeg = 15
	// Function application.
	precApp = 80
	// Atoms never require parenthesisation.
	precAtom = 90
)

// RenderExpr converts an IR tree into Lean concrete syntax.
func RenderExpr(expr ir.Expr) string {
	return render(expr, 0)
}

// Determine how tightly the rendered form of an expression binds.
func prec(expr ir.Expr) int {
	switch e := expr.(type) {
	case *ir.Var, *ir.Param:
		return precAtom
	case *ir.Const:
		if e.Value < 0 {
			return precNeg
		}

		return precAtom
	case *ir.Unary:
		switch e.Kind {
		case ir.Neg:
			return precNeg
		case ir.Square:
			return precPow
		default:
			return precApp
		}
	case *ir.Binary:
		switch e.Kind {
		case ir.Add, ir.Sub:
			return precAdd
		case ir.Mul, ir.Div:
			return precMul
		case ir.Pow:
			return precPow
		case ir.Min, ir.Max:
			return precApp
		default:
			return precRelation
		}
	case *ir.Reduce:
		if e.Kind == ir.Sum && indexedFamily(e.Arg) {
			return precBig
		}

		return precApp
	case *ir.Norm:
		// Norm bars delimit their operand themselves.
		return precAtom
	default:
		panic(fmt.Sprintf("unknown expression %T", expr))
	}
}

// Render an expression, parenthesising it if it binds more loosely than the
// surrounding context requires.
func render(expr ir.Expr, min int) string {
	s := renderInner(expr)
	//
	if prec(expr) < min {
		return fmt.Sprintf("(%s)", s)
	}
	//
	return s
}

func renderInner(expr ir.Expr) string {
	switch e := expr.(type) {
	case *ir.Var:
		return e.Name
	case *ir.Param:
		return e.Name
	case *ir.Const:
		return ir.FormatValue(e.Value)
	case *ir.Unary:
		return renderUnary(e)
	case *ir.Binary:
		return renderBinary(e)
	case *ir.Reduce:
		return renderReduce(e)
	case *ir.Norm:
		return fmt.Sprintf("‖%s‖", render(e.Arg, 0))
	default:
		panic(fmt.Sprintf("unknown expression %T", expr))
	}
}

func renderUnary(e *ir.Unary) string {
	switch e.Kind {
	case ir.Neg:
		return fmt.Sprintf("-%s", render(e.Arg, precApp))
	case ir.Square:
		return fmt.Sprintf("%s ^ 2", render(e.Arg, precPow+1))
	case ir.Abs:
		return fmt.Sprintf("|%s|", render(e.Arg, 0))
	case ir.Sqrt:
		return fmt.Sprintf("sqrt %s", render(e.Arg, precAtom))
	case ir.Exp:
		return fmt.Sprintf("exp %s", render(e.Arg, precAtom))
	case ir.Log:
		return fmt.Sprintf("log %s", render(e.Arg, precAtom))
	default:
		panic(fmt.Sprintf("unknown unary operator: %d", e.Kind))
	}
}

func renderBinary(e *ir.Binary) string {
	var symbol string
	//
	switch e.Kind {
	case ir.Add:
		symbol = "+"
	case ir.Sub:
		symbol = "-"
	case ir.Mul:
		return renderMul(e)
	case ir.Div:
		symbol = "/"
	case ir.Pow:
		// Right associative
		return fmt.Sprintf("%s ^ %s", render(e.Lhs, precPow+1), render(e.Rhs, precPow))
	case ir.Min:
		return fmt.Sprintf("min %s %s", render(e.Lhs, precAtom), render(e.Rhs, precAtom))
	case ir.Max:
		return fmt.Sprintf("max %s %s", render(e.Lhs, precAtom), render(e.Rhs, precAtom))
	case ir.Eq:
		symbol = "="
	case ir.Le:
		symbol = "≤"
	case ir.Ge:
		symbol = "≥"
	case ir.Lt:
		symbol = "<"
	case ir.Gt:
		symbol = ">"
	default:
		panic(fmt.Sprintf("unknown binary operator: %d", e.Kind))
	}
	//
	own := prec(e)
	// Left associative: the right child must bind strictly tighter.
	return fmt.Sprintf("%s %s %s", render(e.Lhs, own), symbol, render(e.Rhs, own+1))
}

// Multiplication notation depends on the operand shapes: scalars multiply
// with *, scaling a vector or matrix uses •, a matrix applied to a vector
// uses *ᵥ and the inner product of two vectors uses ⬝ᵥ.
func renderMul(e *ir.Binary) string {
	var (
		lhs    = e.Lhs
		rhs    = e.Rhs
		symbol string
	)
	//
	switch {
	case lhs.Shape().IsScalar() && rhs.Shape().IsScalar():
		symbol = "*"
	case lhs.Shape().IsScalar():
		symbol = "•"
	case rhs.Shape().IsScalar():
		// Lean's scalar action puts the scalar on the left.
		lhs, rhs, symbol = rhs, lhs, "•"
	case lhs.Shape().IsMatrix():
		symbol = "*ᵥ"
	default:
		symbol = "⬝ᵥ"
	}
	//
	return fmt.Sprintf("%s %s %s", render(lhs, precMul), symbol, render(rhs, precMul+1))
}

// Reductions over a variable declared as an indexed family use Lean's native
// big-operator notation; reductions over compound expressions use the
// explicit aggregate form.  The choice follows the declared shape of the
// operand, never a best-effort guess.
func renderReduce(e *ir.Reduce) string {
	if e.Kind == ir.Trace {
		return fmt.Sprintf("Matrix.trace %s", render(e.Arg, precAtom))
	}
	//
	if v, ok := e.Arg.(*ir.Var); ok {
		return fmt.Sprintf("∑ i, %s i", v.Name)
	}
	//
	return fmt.Sprintf("Vec.sum %s", render(e.Arg, precAtom))
}

func indexedFamily(expr ir.Expr) bool {
	_, ok := expr.(*ir.Var)
	return ok
}

// RenderSignature renders the Lean binder for a declared name, e.g.
// "(x : ℝ)" or "(w : Fin 3 → ℝ)".  Consecutive declarations sharing a type
// are grouped by the scaffold, not here.
func renderType(shape ir.Shape) string {
	switch {
	case shape.IsScalar():
		return "ℝ"
	case shape.IsVector():
		return fmt.Sprintf("Fin %d → ℝ", shape.Len())
	default:
		m, n := shape.Dims()
		return fmt.Sprintf("Matrix (Fin %d) (Fin %d) ℝ", m, n)
	}
}

// Group consecutive names of identical type into single binders, rendering
// e.g. "(x y : ℝ) (w : Fin 3 → ℝ)".
func renderBinders(names []string, types []string) string {
	var (
		builder strings.Builder
		group   []string
	)
	//
	flush := func(typ string) {
		if len(group) > 0 {
			if builder.Len() > 0 {
				builder.WriteString(" ")
			}
			//
			fmt.Fprintf(&builder, "(%s : %s)", strings.Join(group, " "), typ)
			group = nil
		}
	}
	//
	for i, name := range names {
		if i > 0 && types[i] != types[i-1] {
			flush(types[i-1])
		}
		//
		group = append(group, name)
	}
	//
	if len(names) > 0 {
		flush(types[len(names)-1])
	}
	//
	return builder.String()
}
