package rewrite

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/convexlab/go-cvxlean/pkg/ir"
	"github.com/convexlab/go-cvxlean/pkg/problem"
	"github.com/convexlab/go-cvxlean/pkg/translate"
)

func TestEncode(t *testing.T) {
	var (
		x      = ir.NewVar("x", ir.ScalarShape())
		w      = ir.NewVar("w", ir.VectorShape(3))
		scalar = ir.ScalarShape()
	)
	// One case per IR variant; the encoding is fully parenthesised and
	// preserves the tree structure exactly.
	assert.Equal(t, "(var x)", Encode(x))
	assert.Equal(t, "(param p)", Encode(ir.NewParam("p", scalar)))
	assert.Equal(t, "-0.5", Encode(ir.NewConst(-0.5)))
	assert.Equal(t, "(sq (var x))", Encode(ir.NewUnary(ir.Square, x)))
	assert.Equal(t, "(add (var x) 1)", Encode(ir.NewBinary(ir.Add, x, ir.NewConst(1), scalar)))
	assert.Equal(t, "(sum (var w))", Encode(ir.NewReduce(ir.Sum, w)))
	assert.Equal(t, "(norm2 (var w))", Encode(ir.NewNorm(2, w)))
	// Nested applications nest on the wire.
	expr := ir.NewBinary(ir.Le, ir.NewNorm(2, w), ir.NewConst(1), scalar)
	assert.Equal(t, "(le (norm2 (var w)) 1)", Encode(expr))
}

func TestEncodeObjective(t *testing.T) {
	x := ir.NewVar("x", ir.ScalarShape())
	//
	assert.Equal(t, "(objFun (var x))", EncodeObjective(x))
	assert.Equal(t, "(objFun (sq (var x)))", EncodeObjective(ir.NewUnary(ir.Square, x)))
}

func TestNewRequest(t *testing.T) {
	var (
		x      = ir.NewVar("x", ir.ScalarShape())
		y      = ir.NewVar("y", ir.ScalarShape())
		scalar = ir.ScalarShape()
	)
	//
	domains := []translate.Domain{
		{Variable: "x", Lower: 0, Upper: math.Inf(1)},
		{Variable: "y", Lower: math.Inf(-1), Upper: 1.5},
	}
	//
	objective := ir.NewBinary(ir.Add, x, y, scalar)
	constraints := []ir.Constraint{
		{Name: "c1", Expr: ir.NewBinary(ir.Ge, x, ir.NewConst(0), scalar)},
		{Name: "c2", Expr: ir.NewBinary(ir.Le, y, ir.NewConst(1.5), scalar)},
	}
	//
	request := NewRequest("p", problem.Minimize, domains, objective, constraints)
	//
	expected := `{"request":"PerformRewrite","prob_name":"p","sense":"min",` +
		`"domains":[["x",["0","inf","1","0"]],["y",["-inf","1.5","0","1"]]],` +
		`"target":{"obj_fun":"(objFun (add (var x) (var y)))",` +
		`"constrs":[["c1","(ge (var x) 0)"],["c2","(le (var y) 1.5)"]]}}`
	//
	assert.Equal(t, expected, request.String())
}

func TestNewRequest_Sense(t *testing.T) {
	x := ir.NewVar("x", ir.ScalarShape())
	//
	request := NewRequest("p", problem.Maximize, nil, x, nil)
	assert.Equal(t, "max", request.Sense)
	//
	request = NewRequest("p", problem.Minimize, nil, x, nil)
	assert.Equal(t, "min", request.Sense)
}
