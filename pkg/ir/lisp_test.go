package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every variant has an exchange encoding; these pin the concrete token forms.

func TestLisp_Leaves(t *testing.T) {
	CheckLisp(t, "(var x)", NewVar("x", ScalarShape()))
	CheckLisp(t, "(param p)", NewParam("p", VectorShape(3)))
	CheckLisp(t, "2", NewConst(2))
	CheckLisp(t, "-1", NewConst(-1))
	CheckLisp(t, "0.4", NewConst(0.4))
}

func TestLisp_Unary(t *testing.T) {
	x := NewVar("x", ScalarShape())
	//
	CheckLisp(t, "(neg (var x))", NewUnary(Neg, x))
	CheckLisp(t, "(abs (var x))", NewUnary(Abs, x))
	CheckLisp(t, "(sqrt (var x))", NewUnary(Sqrt, x))
	CheckLisp(t, "(sq (var x))", NewUnary(Square, x))
	CheckLisp(t, "(exp (var x))", NewUnary(Exp, x))
	CheckLisp(t, "(log (var x))", NewUnary(Log, x))
}

func TestLisp_Binary(t *testing.T) {
	var (
		x      = NewVar("x", ScalarShape())
		y      = NewVar("y", ScalarShape())
		scalar = ScalarShape()
	)
	//
	CheckLisp(t, "(add (var x) (var y))", NewBinary(Add, x, y, scalar))
	CheckLisp(t, "(sub (var x) (var y))", NewBinary(Sub, x, y, scalar))
	CheckLisp(t, "(mul 2 (var y))", NewBinary(Mul, NewConst(2), y, scalar))
	CheckLisp(t, "(div (var x) 2)", NewBinary(Div, x, NewConst(2), scalar))
	CheckLisp(t, "(pow (var x) 2)", NewBinary(Pow, x, NewConst(2), scalar))
	CheckLisp(t, "(min (var x) (var y))", NewBinary(Min, x, y, scalar))
	CheckLisp(t, "(max (var x) (var y))", NewBinary(Max, x, y, scalar))
	CheckLisp(t, "(le (var x) 1)", NewBinary(Le, x, NewConst(1), scalar))
	CheckLisp(t, "(ge (var x) 0)", NewBinary(Ge, x, NewConst(0), scalar))
	CheckLisp(t, "(eq (var x) (var y))", NewBinary(Eq, x, y, scalar))
	CheckLisp(t, "(lt (var x) 1)", NewBinary(Lt, x, NewConst(1), scalar))
	CheckLisp(t, "(gt (var x) 0)", NewBinary(Gt, x, NewConst(0), scalar))
}

func TestLisp_Reduce(t *testing.T) {
	var (
		w = NewVar("w", VectorShape(3))
		m = NewVar("M", MatrixShape(2, 2))
	)
	//
	CheckLisp(t, "(sum (var w))", NewReduce(Sum, w))
	CheckLisp(t, "(tr (var M))", NewReduce(Trace, m))
}

func TestLisp_Norm(t *testing.T) {
	w := NewVar("w", VectorShape(3))
	CheckLisp(t, "(norm2 (var w))", NewNorm(2, w))
}

func TestLisp_Nested(t *testing.T) {
	var (
		x = NewVar("x", ScalarShape())
		y = NewVar("y", ScalarShape())
	)
	// x + 2 * y
	var expr Expr = NewBinary(Add, x, NewBinary(Mul, NewConst(2), y, ScalarShape()), ScalarShape())
	CheckLisp(t, "(add (var x) (mul 2 (var y)))", expr)
	// (x - 1)^2 via the square operator
	expr = NewUnary(Square, NewBinary(Add, x, NewConst(-1), ScalarShape()))
	CheckLisp(t, "(sq (add (var x) -1))", expr)
}

func TestLisp_Relations(t *testing.T) {
	assert.False(t, Add.IsRelation())
	assert.False(t, Max.IsRelation())
	assert.True(t, Eq.IsRelation())
	assert.True(t, Le.IsRelation())
	assert.True(t, Gt.IsRelation())
}

func CheckLisp(t *testing.T, expected string, expr Expr) {
	assert.Equal(t, expected, expr.Lisp().String())
}
