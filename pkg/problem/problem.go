package problem

import (
	"github.com/convexlab/go-cvxlean/pkg/ir"
)

// Sense determines the optimisation direction of an objective.
type Sense int

const (
	// Minimize indicates the objective is to be minimised.
	Minimize Sense = iota
	// Maximize indicates the objective is to be maximised.
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}

	return "minimize"
}

// Variable is a decision variable declared by the host problem.
type Variable struct {
	// Name of this variable, unique within the problem.
	Name string
	// Declared shape of this variable.
	Shape ir.Shape
	// Integer indicates an integrality restriction.  Such variables are
	// declared at this boundary but are not (yet) supported by the
	// translation.
	Integer bool
}

// Parameter is a named datum of the host problem which is fixed at solve
// time, as opposed to a decision variable.
type Parameter struct {
	// Name of this parameter, unique within the problem.
	Name string
	// Declared shape of this parameter.
	Shape ir.Shape
}

// Constraint is a single (optionally named) relational constraint of the host
// problem.
type Constraint struct {
	// Name given by the user, or empty if anonymous.
	Name string
	// Expr is the constraint expression, whose root must be relational.
	Expr Expr
}

// Objective couples an optimisation direction with the expression being
// optimised.
type Objective struct {
	Sense Sense
	Expr  Expr
}

// Problem is the boundary object handed to the translation pipeline by the
// host optimisation-modelling layer.  It is a plain description: variables,
// parameters, an objective and constraints, in declared order.
type Problem struct {
	// Name of this problem.
	Name string
	// Variables in declared order.
	Variables []Variable
	// Parameters in declared order.
	Parameters []Parameter
	// Objective of this problem.
	Objective Objective
	// Constraints in declared order.
	Constraints []Constraint
}

// Variable looks up a declared variable by name, returning nil if there is no
// such variable.
func (p *Problem) Variable(name string) *Variable {
	for i := range p.Variables {
		if p.Variables[i].Name == name {
			return &p.Variables[i]
		}
	}

	return nil
}

// Parameter looks up a declared parameter by name, returning nil if there is
// no such parameter.
func (p *Problem) Parameter(name string) *Parameter {
	for i := range p.Parameters {
		if p.Parameters[i].Name == name {
			return &p.Parameters[i]
		}
	}

	return nil
}
