package lean

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convexlab/go-cvxlean/pkg/ir"
	"github.com/convexlab/go-cvxlean/pkg/problem"
)

func TestScaffold_Basic(t *testing.T) {
	renderer := &Renderer{
		Name: "simple_lp",
		Variables: []problem.Variable{
			{Name: "x", Shape: ir.ScalarShape()},
			{Name: "y", Shape: ir.ScalarShape()},
		},
		Sense:     problem.Minimize,
		Objective: add(x, mul(two(), y)),
		Constraints: []ir.Constraint{
			{Name: "c1", Expr: binary(ir.Ge, x, ir.NewConst(0))},
			{Name: "c2", Expr: binary(ir.Ge, y, ir.NewConst(0))},
			{Name: "c3", Expr: binary(ir.Le, add(x, y), one())},
		},
	}
	//
	CheckScaffold(t, "simple_lp_basic", renderer, Basic)
}

func TestScaffold_WithSolver(t *testing.T) {
	renderer := &Renderer{
		Name: "quadratic",
		Variables: []problem.Variable{
			{Name: "x", Shape: ir.ScalarShape()},
		},
		Sense:     problem.Minimize,
		Objective: square(add(x, ir.NewConst(-1))),
		Constraints: []ir.Constraint{
			{Name: "c1", Expr: binary(ir.Ge, x, ir.NewConst(0))},
			{Name: "c2", Expr: binary(ir.Le, x, two())},
		},
	}
	//
	CheckScaffold(t, "quadratic_with_solver", renderer, WithSolver)
}

func TestScaffold_WithProof(t *testing.T) {
	renderer := &Renderer{
		Name: "portfolio",
		Variables: []problem.Variable{
			{Name: "w", Shape: ir.VectorShape(3)},
		},
		Parameters: []problem.Parameter{
			{Name: "mu", Shape: ir.VectorShape(3)},
		},
		Sense: problem.Minimize,
		Objective: binary(ir.Sub,
			ir.NewReduce(ir.Sum, square(w)),
			ir.NewBinary(ir.Mul, mu, w, ir.ScalarShape())),
		Constraints: []ir.Constraint{
			{Name: "budget", Expr: binary(ir.Eq, ir.NewReduce(ir.Sum, w), one())},
			{Name: "c2", Expr: ir.NewBinary(ir.Ge, w, ir.NewConst(0), w.Shape())},
			{Name: "c3", Expr: ir.NewBinary(ir.Le, w, ir.NewConst(0.4), w.Shape())},
		},
	}
	//
	CheckScaffold(t, "portfolio_with_proof", renderer, WithProof)
}

func TestScaffold_Maximize(t *testing.T) {
	renderer := &Renderer{
		Name: "maxprob",
		Variables: []problem.Variable{
			{Name: "x", Shape: ir.ScalarShape()},
		},
		Sense:     problem.Maximize,
		Objective: ir.NewUnary(ir.Log, x),
	}
	//
	text, err := renderer.Render(Basic)
	require.NoError(t, err)
	assert.Contains(t, text, "maximize log x\n")
	// No constraints, no subject-to block.
	assert.NotContains(t, text, "subject to")
}

func TestScaffold_UnknownTemplate(t *testing.T) {
	var unknown *UnknownTemplateError
	//
	renderer := &Renderer{Name: "p", Objective: x}
	//
	_, err := renderer.Render(Template("fancy"))
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "fancy", unknown.Name)
}

func TestParseTemplate(t *testing.T) {
	for _, name := range []string{"basic", "with_solver", "with_proof"} {
		template, err := ParseTemplate(name)
		require.NoError(t, err)
		assert.Equal(t, Template(name), template)
	}
	//
	_, err := ParseTemplate("bogus")
	assert.Error(t, err)
	_, err = ParseTemplate("")
	assert.Error(t, err)
}

// ============================================================================
// Helpers
// ============================================================================

func CheckScaffold(t *testing.T, name string, renderer *Renderer, template Template) {
	text, err := renderer.Render(template)
	require.NoError(t, err)
	//
	g := goldie.New(t)
	g.Assert(t, name, []byte(text))
}
