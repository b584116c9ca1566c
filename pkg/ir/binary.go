package ir

import (
	"fmt"

	"github.com/convexlab/go-cvxlean/pkg/sexp"
)

// BinaryKind identifies a binary operator, covering both arithmetic and the
// relational comparisons used at constraint roots.
type BinaryKind int

const (
	// Add is elementwise addition.
	Add BinaryKind = iota
	// Sub is elementwise subtraction.
	Sub
	// Mul is multiplication (scalar broadcast or matrix-vector product).
	Mul
	// Div is division by a scalar.
	Div
	// Pow is the elementwise power with scalar exponent.
	Pow
	// Min is the binary minimum.
	Min
	// Max is the binary maximum.
	Max
	// Eq is the equality relation.
	Eq
	// Le is the less-than-or-equal relation.
	Le
	// Ge is the greater-than-or-equal relation.
	Ge
	// Lt is the strict less-than relation.
	Lt
	// Gt is the strict greater-than relation.
	Gt
)

// Token returns the exchange-format token for this operator.
func (k BinaryKind) Token() string {
	switch k {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Pow:
		return "pow"
	case Min:
		return "min"
	case Max:
		return "max"
	case Eq:
		return "eq"
	case Le:
		return "le"
	case Ge:
		return "ge"
	case Lt:
		return "lt"
	case Gt:
		return "gt"
	default:
		panic(fmt.Sprintf("unknown binary operator: %d", k))
	}
}

// IsRelation checks whether this operator is a relational comparison, and
// hence only permitted at the root of a constraint.
func (k BinaryKind) IsRelation() bool {
	return k >= Eq
}

// Binary represents the application of a binary operator.  The shape is fixed
// at construction time by the normaliser, which is responsible for checking
// operand compatibility.
type Binary struct {
	Kind  BinaryKind
	Lhs   Expr
	Rhs   Expr
	shape Shape
}

var _ Expr = (*Binary)(nil)

// NewBinary constructs a binary operator application with a given result
// shape.
func NewBinary(kind BinaryKind, lhs Expr, rhs Expr, shape Shape) *Binary {
	return &Binary{kind, lhs, rhs, shape}
}

// Shape returns the result shape determined for this application.
func (p *Binary) Shape() Shape { return p.shape }

// Lisp encodes this application as "(op lhs rhs)".
func (p *Binary) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol(p.Kind.Token()),
		p.Lhs.Lisp(),
		p.Rhs.Lisp(),
	})
}

func (p *Binary) expr() {}
