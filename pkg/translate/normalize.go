package translate

import (
	"fmt"

	"github.com/convexlab/go-cvxlean/pkg/ir"
	"github.com/convexlab/go-cvxlean/pkg/problem"
)

// Operator tables mapping host operator tokens onto IR variants.  These
// tables are deliberately closed: any token absent from all of them is
// rejected with an UnsupportedExpressionError rather than degrading into some
// generic fallback.
var unaryOps = map[string]ir.UnaryKind{
	"neg":    ir.Neg,
	"abs":    ir.Abs,
	"sqrt":   ir.Sqrt,
	"square": ir.Square,
	"exp":    ir.Exp,
	"log":    ir.Log,
}

var binaryOps = map[string]ir.BinaryKind{
	"add": ir.Add,
	"sub": ir.Sub,
	"mul": ir.Mul,
	"div": ir.Div,
	"pow": ir.Pow,
	"min": ir.Min,
	"max": ir.Max,
}

var relationOps = map[string]ir.BinaryKind{
	"eq": ir.Eq,
	"le": ir.Le,
	"ge": ir.Ge,
	"lt": ir.Lt,
	"gt": ir.Gt,
}

var reduceOps = map[string]ir.ReduceKind{
	"sum":   ir.Sum,
	"trace": ir.Trace,
}

// Normalizer converts host expression trees into the typed IR, resolving
// references against a given problem's declarations and inferring the shape
// of every node as it goes.  Normalisation is purely functional over its
// input; a Normalizer holds no mutable state and may be shared freely.
type Normalizer struct {
	prob *problem.Problem
}

// NewNormalizer constructs a normaliser for a given problem.
func NewNormalizer(prob *problem.Problem) *Normalizer {
	return &Normalizer{prob}
}

// Objective normalises the objective expression of the enclosing problem.
// Objectives must evaluate to a scalar.
func (p *Normalizer) Objective() (ir.Expr, error) {
	expr, err := p.expr(p.prob.Objective.Expr, "objective")
	if err != nil {
		return nil, err
	}
	//
	if !expr.Shape().IsScalar() {
		return nil, &ShapeMismatchError{"objective", "objective", expr.Shape(), ir.ScalarShape()}
	}
	//
	return expr, nil
}

// Constraint normalises the constraint at a given (1-based) position.  The
// root operator must be relational; relations anywhere else are rejected.
func (p *Normalizer) Constraint(position uint, constraint problem.Constraint) (ir.Expr, error) {
	path := fmt.Sprintf("constraint %d", position)
	//
	call, ok := constraint.Expr.(*problem.Call)
	if !ok {
		return nil, &UnsupportedExpressionError{"non-relational constraint", path}
	}
	//
	kind, ok := relationOps[call.Op]
	if !ok {
		return nil, &UnsupportedExpressionError{call.Op, path}
	} else if len(call.Args) != 2 {
		return nil, &UnsupportedExpressionError{arity(call.Op, len(call.Args)), path}
	}
	//
	lhs, err := p.expr(call.Args[0], at(path, call.Op, 0))
	if err != nil {
		return nil, err
	}
	//
	rhs, err := p.expr(call.Args[1], at(path, call.Op, 1))
	if err != nil {
		return nil, err
	}
	// Relations broadcast componentwise, exactly like elementwise arithmetic.
	shape, ok := ir.JoinElementwise(lhs.Shape(), rhs.Shape())
	if !ok {
		return nil, &ShapeMismatchError{call.Op, path, lhs.Shape(), rhs.Shape()}
	}
	//
	return ir.NewBinary(kind, lhs, rhs, shape), nil
}

// Expr normalises an arbitrary (non-relational) host expression rooted at a
// given path.
func (p *Normalizer) Expr(expr problem.Expr, path string) (ir.Expr, error) {
	return p.expr(expr, path)
}

func (p *Normalizer) expr(expr problem.Expr, path string) (ir.Expr, error) {
	switch e := expr.(type) {
	case *problem.Lit:
		return ir.NewConst(e.Value), nil
	case *problem.Ref:
		return p.ref(e, path)
	case *problem.Call:
		return p.call(e, path)
	default:
		return nil, &UnsupportedExpressionError{fmt.Sprintf("%T", expr), path}
	}
}

func (p *Normalizer) ref(e *problem.Ref, path string) (ir.Expr, error) {
	if v := p.prob.Variable(e.Name); v != nil {
		// Integer restrictions have no counterpart in the target framework.
		if v.Integer {
			return nil, &UnsupportedExpressionError{fmt.Sprintf("integer variable %q", v.Name), path}
		}

		return ir.NewVar(v.Name, v.Shape), nil
	} else if param := p.prob.Parameter(e.Name); param != nil {
		return ir.NewParam(param.Name, param.Shape), nil
	}
	// Unreachable for problems built by the loader, which validates
	// references against the declaration tables.
	return nil, &UnsupportedExpressionError{fmt.Sprintf("undeclared name %q", e.Name), path}
}

func (p *Normalizer) call(e *problem.Call, path string) (ir.Expr, error) {
	if kind, ok := unaryOps[e.Op]; ok {
		return p.unary(kind, e, path)
	} else if kind, ok := binaryOps[e.Op]; ok {
		return p.binary(kind, e, path)
	} else if kind, ok := reduceOps[e.Op]; ok {
		return p.reduce(kind, e, path)
	} else if _, ok := relationOps[e.Op]; ok {
		// Relations are only meaningful at constraint roots.
		return nil, &UnsupportedExpressionError{fmt.Sprintf("nested relation %q", e.Op), path}
	}
	//
	switch e.Op {
	case "sum_squares":
		return p.sumSquares(e, path)
	case "norm":
		return p.norm(e, path)
	}
	//
	return nil, &UnsupportedExpressionError{e.Op, path}
}

func (p *Normalizer) unary(kind ir.UnaryKind, e *problem.Call, path string) (ir.Expr, error) {
	if len(e.Args) != 1 {
		return nil, &UnsupportedExpressionError{arity(e.Op, len(e.Args)), path}
	}
	//
	arg, err := p.expr(e.Args[0], at(path, e.Op, 0))
	if err != nil {
		return nil, err
	}
	//
	return ir.NewUnary(kind, arg), nil
}

func (p *Normalizer) binary(kind ir.BinaryKind, e *problem.Call, path string) (ir.Expr, error) {
	var foldable bool
	// Addition, subtraction, multiplication and division fold left when
	// applied to more than two arguments, matching how host layers flatten
	// chained applications.
	switch kind {
	case ir.Add, ir.Sub, ir.Mul, ir.Div:
		foldable = len(e.Args) > 2
	}
	//
	if len(e.Args) != 2 && !foldable {
		return nil, &UnsupportedExpressionError{arity(e.Op, len(e.Args)), path}
	}
	//
	acc, err := p.expr(e.Args[0], at(path, e.Op, 0))
	if err != nil {
		return nil, err
	}
	//
	for i := 1; i < len(e.Args); i++ {
		arg, err := p.expr(e.Args[i], at(path, e.Op, i))
		if err != nil {
			return nil, err
		}
		//
		acc, err = p.apply(kind, acc, arg, e.Op, path)
		if err != nil {
			return nil, err
		}
	}
	//
	return acc, nil
}

func (p *Normalizer) apply(kind ir.BinaryKind, lhs ir.Expr, rhs ir.Expr, op string, path string) (ir.Expr, error) {
	var (
		shape ir.Shape
		ok    bool
	)
	//
	switch kind {
	case ir.Mul:
		shape, ok = ir.JoinMul(lhs.Shape(), rhs.Shape())
	case ir.Pow:
		// Elementwise power requires a scalar exponent.
		shape, ok = lhs.Shape(), rhs.Shape().IsScalar()
	default:
		shape, ok = ir.JoinElementwise(lhs.Shape(), rhs.Shape())
	}
	//
	if !ok {
		return nil, &ShapeMismatchError{op, path, lhs.Shape(), rhs.Shape()}
	}
	//
	return ir.NewBinary(kind, lhs, rhs, shape), nil
}

func (p *Normalizer) reduce(kind ir.ReduceKind, e *problem.Call, path string) (ir.Expr, error) {
	if len(e.Args) != 1 {
		return nil, &UnsupportedExpressionError{arity(e.Op, len(e.Args)), path}
	}
	//
	arg, err := p.expr(e.Args[0], at(path, e.Op, 0))
	if err != nil {
		return nil, err
	}
	// Reductions have fixed operand shapes: sum contracts a vector, trace
	// contracts a square matrix.
	switch {
	case kind == ir.Sum && arg.Shape().IsVector():
		// ok
	case kind == ir.Trace && squareMatrix(arg.Shape()):
		// ok
	default:
		return nil, &ShapeMismatchError{e.Op, path, arg.Shape(), expectedOperand(kind)}
	}
	//
	return ir.NewReduce(kind, arg), nil
}

// Host sum_squares is sugar for summing elementwise squares.
func (p *Normalizer) sumSquares(e *problem.Call, path string) (ir.Expr, error) {
	if len(e.Args) != 1 {
		return nil, &UnsupportedExpressionError{arity(e.Op, len(e.Args)), path}
	}
	//
	arg, err := p.expr(e.Args[0], at(path, e.Op, 0))
	if err != nil {
		return nil, err
	}
	//
	squared := ir.NewUnary(ir.Square, arg)
	// Scalar operands square without a reduction.
	if arg.Shape().IsScalar() {
		return squared, nil
	} else if !arg.Shape().IsVector() {
		return nil, &ShapeMismatchError{e.Op, path, arg.Shape(), ir.VectorShape(1)}
	}
	//
	return ir.NewReduce(ir.Sum, squared), nil
}

func (p *Normalizer) norm(e *problem.Call, path string) (ir.Expr, error) {
	var (
		order uint = 2
		arg   problem.Expr
	)
	// Accept both (norm x), defaulting to the Euclidean norm, and
	// (norm k x) with an explicit order.
	switch len(e.Args) {
	case 1:
		arg = e.Args[0]
	case 2:
		lit, ok := e.Args[0].(*problem.Lit)
		if !ok || lit.Value != float64(uint(lit.Value)) {
			return nil, &UnsupportedExpressionError{"norm with non-literal order", path}
		}
		//
		order, arg = uint(lit.Value), e.Args[1]
	default:
		return nil, &UnsupportedExpressionError{arity(e.Op, len(e.Args)), path}
	}
	// Only the Euclidean norm has an exchange encoding.
	if order != 2 {
		return nil, &UnsupportedExpressionError{fmt.Sprintf("norm of order %d", order), path}
	}
	//
	operand, err := p.expr(arg, at(path, e.Op, len(e.Args)-1))
	if err != nil {
		return nil, err
	}
	//
	if !operand.Shape().IsVector() {
		return nil, &ShapeMismatchError{e.Op, path, operand.Shape(), ir.VectorShape(1)}
	}
	//
	return ir.NewNorm(order, operand), nil
}

func squareMatrix(shape ir.Shape) bool {
	m, n := shape.Dims()
	return shape.IsMatrix() && m == n
}

func expectedOperand(kind ir.ReduceKind) ir.Shape {
	if kind == ir.Trace {
		return ir.MatrixShape(1, 1)
	}

	return ir.VectorShape(1)
}

func arity(op string, n int) string {
	return fmt.Sprintf("%s with %d arguments", op, n)
}

func at(path string, op string, arg int) string {
	return fmt.Sprintf("%s/%s[%d]", path, op, arg)
}
