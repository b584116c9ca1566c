package ir

import (
	"github.com/convexlab/go-cvxlean/pkg/sexp"
)

// Var represents a reference to a decision variable of the enclosing problem.
type Var struct {
	Name  string
	shape Shape
}

var _ Expr = (*Var)(nil)

// NewVar constructs a variable reference of a given shape.
func NewVar(name string, shape Shape) *Var {
	return &Var{name, shape}
}

// Shape returns the declared shape of this variable.
func (p *Var) Shape() Shape { return p.shape }

// Lisp encodes this variable reference as "(var name)".
func (p *Var) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("var"),
		sexp.NewSymbol(p.Name),
	})
}

func (p *Var) expr() {}

// Param represents a reference to a problem parameter (i.e. given data rather
// than a decision variable).
type Param struct {
	Name  string
	shape Shape
}

var _ Expr = (*Param)(nil)

// NewParam constructs a parameter reference of a given shape.
func NewParam(name string, shape Shape) *Param {
	return &Param{name, shape}
}

// Shape returns the declared shape of this parameter.
func (p *Param) Shape() Shape { return p.shape }

// Lisp encodes this parameter reference as "(param name)".
func (p *Param) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("param"),
		sexp.NewSymbol(p.Name),
	})
}

func (p *Param) expr() {}

// Const represents a scalar numeric constant.
type Const struct {
	Value float64
}

var _ Expr = (*Const)(nil)

// NewConst constructs a constant with a given value.
func NewConst(value float64) *Const {
	return &Const{value}
}

// Shape of a constant is always scalar.
func (p *Const) Shape() Shape { return ScalarShape() }

// Lisp encodes this constant as a bare decimal symbol.
func (p *Const) Lisp() sexp.SExp {
	return sexp.NewSymbol(FormatValue(p.Value))
}

func (p *Const) expr() {}
