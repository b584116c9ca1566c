package rewrite

import (
	"fmt"
	"strconv"

	"github.com/convexlab/go-cvxlean/pkg/ir"
	"github.com/convexlab/go-cvxlean/pkg/problem"
	"github.com/convexlab/go-cvxlean/pkg/sexp"
)

// SerializationError indicates a defect on the exchange boundary: either an
// IR node with no encoding rule (statically impossible, but guarded) or a
// rewrite-engine response which does not decode against the problem's
// declarations.
type SerializationError struct {
	Msg string
}

func (p *SerializationError) Error() string {
	return p.Msg
}

func serializationErrorf(format string, args ...any) *SerializationError {
	return &SerializationError{fmt.Sprintf(format, args...)}
}

// Inverse token tables for decoding engine responses.  These mirror the
// Token methods of the IR operator kinds.
var unaryTokens = map[string]ir.UnaryKind{
	"neg":  ir.Neg,
	"abs":  ir.Abs,
	"sqrt": ir.Sqrt,
	"sq":   ir.Square,
	"exp":  ir.Exp,
	"log":  ir.Log,
}

var binaryTokens = map[string]ir.BinaryKind{
	"add": ir.Add,
	"sub": ir.Sub,
	"mul": ir.Mul,
	"div": ir.Div,
	"pow": ir.Pow,
	"min": ir.Min,
	"max": ir.Max,
	"eq":  ir.Eq,
	"le":  ir.Le,
	"ge":  ir.Ge,
	"lt":  ir.Lt,
	"gt":  ir.Gt,
}

var reduceTokens = map[string]ir.ReduceKind{
	"sum": ir.Sum,
	"tr":  ir.Trace,
}

// Decoder reconstructs IR trees from the S-expression forms returned by the
// rewrite engine, resolving leaf references against a problem's declarations
// and re-deriving shapes as it goes.
type Decoder struct {
	prob *problem.Problem
}

// NewDecoder constructs a decoder for a given problem.
func NewDecoder(prob *problem.Problem) *Decoder {
	return &Decoder{prob}
}

// Objective decodes an objective S-expression of the form "(objFun e)".
func (p *Decoder) Objective(text string) (ir.Expr, error) {
	sExp, err := sexp.Parse(text)
	if err != nil {
		return nil, serializationErrorf("malformed objective: %v", err)
	}
	//
	list := sExp.AsList()
	if list == nil || list.Len() != 2 || !list.MatchSymbols(1, "objFun") {
		return nil, serializationErrorf("objective missing objFun marker: %s", text)
	}
	//
	return p.decode(list.Get(1))
}

// Expr decodes a bare S-expression, such as a rewritten constraint.
func (p *Decoder) Expr(text string) (ir.Expr, error) {
	sExp, err := sexp.Parse(text)
	if err != nil {
		return nil, serializationErrorf("malformed expression: %v", err)
	}
	//
	return p.decode(sExp)
}

func (p *Decoder) decode(sExp sexp.SExp) (ir.Expr, error) {
	if symbol := sExp.AsSymbol(); symbol != nil {
		value, err := strconv.ParseFloat(symbol.Value, 64)
		if err != nil {
			return nil, serializationErrorf("unexpected symbol %q", symbol.Value)
		}

		return ir.NewConst(value), nil
	}
	//
	list := sExp.AsList()
	//
	if list.Len() == 0 || list.Get(0).AsSymbol() == nil {
		return nil, serializationErrorf("malformed application %s", list.String())
	}
	//
	token := list.Get(0).AsSymbol().Value
	//
	if token == "var" || token == "param" {
		return p.leaf(token, list)
	} else if token == "norm2" {
		return p.norm(list)
	} else if kind, ok := unaryTokens[token]; ok {
		return p.unary(kind, list)
	} else if kind, ok := reduceTokens[token]; ok {
		return p.reduce(kind, list)
	} else if kind, ok := binaryTokens[token]; ok {
		return p.binary(kind, list)
	}
	//
	return nil, serializationErrorf("unknown operator %q", token)
}

func (p *Decoder) leaf(tag string, list *sexp.List) (ir.Expr, error) {
	if list.Len() != 2 || list.Get(1).AsSymbol() == nil {
		return nil, serializationErrorf("malformed reference %s", list.String())
	}
	//
	name := list.Get(1).AsSymbol().Value
	//
	if tag == "var" {
		if v := p.prob.Variable(name); v != nil {
			return ir.NewVar(v.Name, v.Shape), nil
		}
	} else if param := p.prob.Parameter(name); param != nil {
		return ir.NewParam(param.Name, param.Shape), nil
	}
	//
	return nil, serializationErrorf("undeclared %s %q", tag, name)
}

func (p *Decoder) unary(kind ir.UnaryKind, list *sexp.List) (ir.Expr, error) {
	if list.Len() != 2 {
		return nil, serializationErrorf("malformed application %s", list.String())
	}
	//
	arg, err := p.decode(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	return ir.NewUnary(kind, arg), nil
}

func (p *Decoder) binary(kind ir.BinaryKind, list *sexp.List) (ir.Expr, error) {
	if list.Len() < 3 {
		return nil, serializationErrorf("malformed application %s", list.String())
	}
	//
	acc, err := p.decode(list.Get(1))
	if err != nil {
		return nil, err
	}
	// The engine is free to return n-ary applications; fold them left.
	for i := 2; i < list.Len(); i++ {
		arg, err := p.decode(list.Get(i))
		if err != nil {
			return nil, err
		}
		//
		acc, err = p.join(kind, acc, arg, list)
		if err != nil {
			return nil, err
		}
	}
	//
	return acc, nil
}

func (p *Decoder) join(kind ir.BinaryKind, lhs ir.Expr, rhs ir.Expr, list *sexp.List) (ir.Expr, error) {
	var (
		shape ir.Shape
		ok    bool
	)
	//
	switch kind {
	case ir.Mul:
		shape, ok = ir.JoinMul(lhs.Shape(), rhs.Shape())
	case ir.Pow:
		shape, ok = lhs.Shape(), rhs.Shape().IsScalar()
	default:
		shape, ok = ir.JoinElementwise(lhs.Shape(), rhs.Shape())
	}
	//
	if !ok {
		return nil, serializationErrorf("ill-shaped application %s (%s versus %s)",
			list.String(), lhs.Shape(), rhs.Shape())
	}
	//
	return ir.NewBinary(kind, lhs, rhs, shape), nil
}

func (p *Decoder) reduce(kind ir.ReduceKind, list *sexp.List) (ir.Expr, error) {
	if list.Len() != 2 {
		return nil, serializationErrorf("malformed application %s", list.String())
	}
	//
	arg, err := p.decode(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	return ir.NewReduce(kind, arg), nil
}

func (p *Decoder) norm(list *sexp.List) (ir.Expr, error) {
	if list.Len() != 2 {
		return nil, serializationErrorf("malformed application %s", list.String())
	}
	//
	arg, err := p.decode(list.Get(1))
	if err != nil {
		return nil, err
	} else if !arg.Shape().IsVector() {
		return nil, serializationErrorf("ill-shaped norm operand (%s)", arg.Shape())
	}
	//
	return ir.NewNorm(2, arg), nil
}
