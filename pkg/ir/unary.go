package ir

import (
	"fmt"

	"github.com/convexlab/go-cvxlean/pkg/sexp"
)

// UnaryKind identifies an elementwise unary operator.
type UnaryKind int

const (
	// Neg is arithmetic negation.
	Neg UnaryKind = iota
	// Abs is the elementwise absolute value.
	Abs
	// Sqrt is the elementwise square root.
	Sqrt
	// Square is the elementwise square.
	Square
	// Exp is the elementwise exponential.
	Exp
	// Log is the elementwise natural logarithm.
	Log
)

// Token returns the exchange-format token for this operator.
func (k UnaryKind) Token() string {
	switch k {
	case Neg:
		return "neg"
	case Abs:
		return "abs"
	case Sqrt:
		return "sqrt"
	case Square:
		return "sq"
	case Exp:
		return "exp"
	case Log:
		return "log"
	default:
		panic(fmt.Sprintf("unknown unary operator: %d", k))
	}
}

// Unary represents the application of an elementwise unary operator.  The
// shape of the result always matches the shape of the operand.
type Unary struct {
	Kind UnaryKind
	Arg  Expr
}

var _ Expr = (*Unary)(nil)

// NewUnary constructs a unary operator application.
func NewUnary(kind UnaryKind, arg Expr) *Unary {
	return &Unary{kind, arg}
}

// Shape of an elementwise operator matches its operand.
func (p *Unary) Shape() Shape { return p.Arg.Shape() }

// Lisp encodes this application as "(op arg)".
func (p *Unary) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol(p.Kind.Token()),
		p.Arg.Lisp(),
	})
}

func (p *Unary) expr() {}
