package lean

import (
	"fmt"
	"strings"

	"github.com/convexlab/go-cvxlean/pkg/ir"
	"github.com/convexlab/go-cvxlean/pkg/problem"
)

// Renderer assembles complete CvxLean source text for a single problem: an
// import preamble, parameter declarations, the optimisation declaration
// itself, and a template-dependent trailer.  Renderers only produce a string;
// writing files is the caller's concern.
type Renderer struct {
	// Name of the problem being declared.
	Name string
	// Variables of the problem, in declared order.
	Variables []problem.Variable
	// Parameters of the problem, in declared order.
	Parameters []problem.Parameter
	// Sense of the objective.
	Sense problem.Sense
	// Objective expression.
	Objective ir.Expr
	// Constraints with their allocated names, in declared order.
	Constraints []ir.Constraint
}

// Render produces the complete source artifact under a given template.
func (p *Renderer) Render(template Template) (string, error) {
	var builder strings.Builder
	//
	switch template {
	case Basic, WithSolver, WithProof:
		// ok
	default:
		return "", &UnknownTemplateError{string(template)}
	}
	// Imports
	builder.WriteString("import CvxLean\n")
	builder.WriteString("\n")
	builder.WriteString("noncomputable section\n")
	builder.WriteString("\n")
	builder.WriteString("open CvxLean Minimization Real BigOperators Matrix\n")
	builder.WriteString("\n")
	// Parameters are bound outside the declaration.
	if binders := p.parameterBinders(); binders != "" {
		fmt.Fprintf(&builder, "variable %s\n", binders)
		builder.WriteString("\n")
	}
	// Declaration header
	fmt.Fprintf(&builder, "def %s :=\n", p.Name)
	fmt.Fprintf(&builder, "  optimization %s\n", p.variableBinders())
	// Objective clause
	fmt.Fprintf(&builder, "    %s %s\n", p.senseKeyword(), RenderExpr(p.Objective))
	// Constraint block
	if len(p.Constraints) > 0 {
		builder.WriteString("    subject to\n")
		//
		for _, constraint := range p.Constraints {
			fmt.Fprintf(&builder, "      %s : %s\n", constraint.Name, RenderExpr(constraint.Expr))
		}
	}
	// Trailer
	switch template {
	case WithSolver:
		builder.WriteString("\n")
		fmt.Fprintf(&builder, "solve %s\n", p.Name)
		builder.WriteString("\n")
		fmt.Fprintf(&builder, "#print %s.reduced\n", p.Name)
		fmt.Fprintf(&builder, "#eval %s.value\n", p.Name)
		fmt.Fprintf(&builder, "#eval %s.solution\n", p.Name)
	case WithProof:
		builder.WriteString("\n")
		fmt.Fprintf(&builder, "theorem %s_is_optimal : %s.optimal := by\n", p.Name, p.Name)
		builder.WriteString("  sorry\n")
	}
	//
	builder.WriteString("\n")
	builder.WriteString("end\n")
	//
	return builder.String(), nil
}

func (p *Renderer) senseKeyword() string {
	if p.Sense == problem.Maximize {
		return "maximize"
	}

	return "minimize"
}

func (p *Renderer) variableBinders() string {
	names := make([]string, len(p.Variables))
	types := make([]string, len(p.Variables))
	//
	for i, v := range p.Variables {
		names[i], types[i] = v.Name, renderType(v.Shape)
	}
	//
	return renderBinders(names, types)
}

func (p *Renderer) parameterBinders() string {
	names := make([]string, len(p.Parameters))
	types := make([]string, len(p.Parameters))
	//
	for i, param := range p.Parameters {
		names[i], types[i] = param.Name, renderType(param.Shape)
	}
	//
	return renderBinders(names, types)
}
