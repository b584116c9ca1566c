package rewrite

import (
	"github.com/convexlab/go-cvxlean/pkg/ir"
	"github.com/convexlab/go-cvxlean/pkg/problem"
	"github.com/convexlab/go-cvxlean/pkg/sexp"
	"github.com/convexlab/go-cvxlean/pkg/translate"
)

// Encode serialises an IR expression into the S-expression form understood by
// the rewrite engine.  Parenthesisation is fully explicit and the encoding is
// a structure-preserving transcription: no simplification happens here.
// Totality over IR variants is enforced at compile time, since the encoding
// is the Lisp method every variant must implement.
func Encode(expr ir.Expr) string {
	return expr.Lisp().String()
}

// EncodeObjective serialises an objective expression, wrapped in the objFun
// marker the engine expects.
func EncodeObjective(expr ir.Expr) string {
	wrapped := sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("objFun"),
		expr.Lisp(),
	})
	//
	return wrapped.String()
}

// NewRequest assembles the exchange document for a single conversion from the
// outputs of the normalisation stages.  Domains and constraints retain their
// declared order.
func NewRequest(name string, sense problem.Sense, domains []translate.Domain,
	objective ir.Expr, constraints []ir.Constraint) *Request {
	request := &Request{
		Kind:     RequestKind,
		ProbName: name,
		Sense:    senseToken(sense),
		Domains:  make([]DomainEntry, len(domains)),
		Target: Target{
			ObjFun:  EncodeObjective(objective),
			Constrs: make([]Constraint, len(constraints)),
		},
	}
	//
	for i, domain := range domains {
		request.Domains[i] = DomainEntry{
			Variable: domain.Variable,
			Bounds: Bounds{
				Lower:       ir.FormatValue(domain.Lower),
				Upper:       ir.FormatValue(domain.Upper),
				LowerFinite: domain.BoundedBelow(),
				UpperFinite: domain.BoundedAbove(),
			},
		}
	}
	//
	for i, constraint := range constraints {
		request.Target.Constrs[i] = Constraint{constraint.Name, Encode(constraint.Expr)}
	}
	//
	return request
}

func senseToken(sense problem.Sense) string {
	if sense == problem.Maximize {
		return "max"
	}

	return "min"
}
