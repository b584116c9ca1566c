package translate

import (
	"math"

	"github.com/convexlab/go-cvxlean/pkg/ir"
	"github.com/convexlab/go-cvxlean/pkg/problem"
)

// Domain summarises the box bounds inferred for a single variable: a lower
// and upper bound (infinite when unbounded) and an integrality flag.  A
// domain is computed once per conversion and read-only afterwards.
type Domain struct {
	// Variable this domain applies to.
	Variable string
	// Lower bound, or negative infinity when unbounded below.
	Lower float64
	// Upper bound, or positive infinity when unbounded above.
	Upper float64
	// Integer indicates an integrality restriction carried over from the
	// variable declaration.
	Integer bool
}

// BoundedBelow checks whether this domain has a finite lower bound.
func (p *Domain) BoundedBelow() bool { return !math.IsInf(p.Lower, -1) }

// BoundedAbove checks whether this domain has a finite upper bound.
func (p *Domain) BoundedAbove() bool { return !math.IsInf(p.Upper, 1) }

// ExtractDomains derives one domain per declared variable by scanning the
// normalised constraints for syntactically simple bound patterns: a variable
// compared against a constant (in either order), including vector variables
// broadcast against a scalar constant.  Constraints which do not match remain
// generic constraints and contribute nothing here.  Multiple bounds on the
// same variable intersect, tightest wins; a contradictory pair (lower above
// upper) is passed through for the solver to report.  Constraints are visited
// in declared order, so the result is deterministic.
func ExtractDomains(prob *problem.Problem, constraints []ir.Expr) []Domain {
	domains := make([]Domain, len(prob.Variables))
	index := make(map[string]int, len(prob.Variables))
	//
	for i, v := range prob.Variables {
		domains[i] = Domain{v.Name, math.Inf(-1), math.Inf(1), v.Integer}
		index[v.Name] = i
	}
	//
	for _, constraint := range constraints {
		name, lower, upper, ok := simpleBound(constraint)
		if !ok {
			continue
		}
		//
		domain := &domains[index[name]]
		domain.Lower = math.Max(domain.Lower, lower)
		domain.Upper = math.Min(domain.Upper, upper)
	}
	//
	return domains
}

// Match a single-variable bound pattern, returning the variable name together
// with the (one-sided) interval the constraint imposes.  Strict comparisons
// contribute the same closed interval as their weak counterparts, which is
// conservative for a box summary.
func simpleBound(constraint ir.Expr) (string, float64, float64, bool) {
	binary, ok := constraint.(*ir.Binary)
	if !ok {
		return "", 0, 0, false
	}
	//
	var (
		upper bool
		v     *ir.Var
		c     *ir.Const
	)
	//
	switch binary.Kind {
	case ir.Le, ir.Lt:
		upper = true
	case ir.Ge, ir.Gt:
		upper = false
	default:
		return "", 0, 0, false
	}
	// Orient the comparison so the variable sits on the left.
	if v, c = operands(binary.Lhs, binary.Rhs); v == nil {
		if v, c = operands(binary.Rhs, binary.Lhs); v == nil {
			return "", 0, 0, false
		}
		// Variable was on the right, so the comparison flips.
		upper = !upper
	}
	//
	if upper {
		return v.Name, math.Inf(-1), c.Value, true
	}
	//
	return v.Name, c.Value, math.Inf(1), true
}

func operands(lhs ir.Expr, rhs ir.Expr) (*ir.Var, *ir.Const) {
	v, okl := lhs.(*ir.Var)
	c, okr := rhs.(*ir.Const)
	//
	if okl && okr {
		return v, c
	}
	//
	return nil, nil
}
