package pipeline

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/convexlab/go-cvxlean/pkg/ir"
	"github.com/convexlab/go-cvxlean/pkg/lean"
	"github.com/convexlab/go-cvxlean/pkg/problem"
	"github.com/convexlab/go-cvxlean/pkg/rewrite"
	"github.com/convexlab/go-cvxlean/pkg/translate"
)

// Options configures a single conversion.
type Options struct {
	// Name of the generated problem declaration; defaults to the problem's
	// own name when empty.
	Name string
	// Template selects the output scaffold.
	Template lean.Template
	// Engine optionally submits the exchange document to the external
	// rewrite engine before rendering.  When nil, the original tree is
	// rendered directly.
	Engine rewrite.Engine
}

// Convert is the single entry point of the translation pipeline.  Stages run
// strictly in sequence over immutable values: normalise the host tree, derive
// domains and allocate constraint names, serialise the exchange document,
// optionally pass it through the rewrite engine, and render the result.  The
// first error from any stage aborts the conversion, wrapped with the stage of
// origin; no partial output is ever produced.  Each call allocates its own
// state, so independent conversions may run concurrently.
func Convert(prob *problem.Problem, options Options) (string, error) {
	name := options.Name
	//
	if name == "" {
		name = prob.Name
	}
	// Reject bad template selectors before doing any work.
	if _, err := lean.ParseTemplate(string(options.Template)); err != nil {
		return "", errors.Wrap(err, "render")
	}
	//
	objective, constraints, err := normalise(prob)
	if err != nil {
		return "", err
	}
	//
	if options.Engine != nil {
		request := serialise(prob, name, objective, constraints)
		//
		objective, constraints, err = submit(prob, options.Engine, request)
		if err != nil {
			return "", err
		}
	}
	//
	renderer := &lean.Renderer{
		Name:        name,
		Variables:   prob.Variables,
		Parameters:  prob.Parameters,
		Sense:       prob.Objective.Sense,
		Objective:   objective,
		Constraints: constraints,
	}
	//
	text, err := renderer.Render(options.Template)
	if err != nil {
		return "", errors.Wrap(err, "render")
	}
	//
	log.Debugf("rendered %d bytes of Lean for problem %q", len(text), name)
	//
	return text, nil
}

// Exchange returns the exchange document for a given problem as a string,
// without rendering any target source.  This is the advanced/manual
// counterpart of Convert.
func Exchange(prob *problem.Problem, name string) (string, error) {
	if name == "" {
		name = prob.Name
	}
	//
	objective, constraints, err := normalise(prob)
	if err != nil {
		return "", err
	}
	//
	return serialise(prob, name, objective, constraints).String(), nil
}

// Run the front-end stages: expression normalisation, then (independently)
// domain extraction and name allocation.
func normalise(prob *problem.Problem) (ir.Expr, []ir.Constraint, error) {
	normalizer := translate.NewNormalizer(prob)
	//
	objective, err := normalizer.Objective()
	if err != nil {
		return nil, nil, errors.Wrap(err, "normalise")
	}
	// Name allocation state is scoped to this conversion.
	allocator := translate.NewAllocator()
	constraints := make([]ir.Constraint, len(prob.Constraints))
	//
	for i, constraint := range prob.Constraints {
		expr, err := normalizer.Constraint(uint(i+1), constraint)
		if err != nil {
			return nil, nil, errors.Wrap(err, "normalise")
		}
		//
		allocated, err := allocator.Allocate(uint(i+1), constraint.Name)
		if err != nil {
			return nil, nil, errors.Wrap(err, "allocate names")
		}
		//
		constraints[i] = ir.Constraint{Name: allocated, Expr: expr}
	}
	//
	log.Debugf("normalised objective and %d constraint(s) for %q", len(constraints), prob.Name)
	//
	return objective, constraints, nil
}

func serialise(prob *problem.Problem, name string, objective ir.Expr, constraints []ir.Constraint) *rewrite.Request {
	exprs := make([]ir.Expr, len(constraints))
	//
	for i, constraint := range constraints {
		exprs[i] = constraint.Expr
	}
	//
	domains := translate.ExtractDomains(prob, exprs)
	//
	return rewrite.NewRequest(name, prob.Objective.Sense, domains, objective, constraints)
}

// Submit the exchange document to the rewrite engine and decode its answer
// back into IR for rendering.  Engine failures pass through uninterpreted.
func submit(prob *problem.Problem, engine rewrite.Engine, request *rewrite.Request) (ir.Expr, []ir.Constraint, error) {
	log.Debugf("submitting problem %q for rewriting", request.ProbName)
	//
	response, err := engine.Rewrite(request)
	if err != nil {
		return nil, nil, errors.Wrap(&rewrite.ExternalRewriteError{Err: err}, "rewrite")
	}
	//
	decoder := rewrite.NewDecoder(prob)
	//
	objective, err := decoder.Objective(response.Target.ObjFun)
	if err != nil {
		return nil, nil, errors.Wrap(err, "rewrite")
	}
	//
	constraints := make([]ir.Constraint, len(response.Target.Constrs))
	//
	for i, constraint := range response.Target.Constrs {
		expr, err := decoder.Expr(constraint.Expr)
		if err != nil {
			return nil, nil, errors.Wrap(err, "rewrite")
		}
		//
		constraints[i] = ir.Constraint{Name: constraint.Name, Expr: expr}
	}
	//
	return objective, constraints, nil
}
