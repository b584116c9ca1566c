package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convexlab/go-cvxlean/pkg/ir"
)

func TestLoad_SimpleLp(t *testing.T) {
	prob := LoadString(t, `
name: simple_lp
variables:
  - name: x
  - name: y
objective:
  sense: minimize
  expr: (add (var x) (mul 2 (var y)))
constraints:
  - expr: (ge (var x) 0)
  - expr: (ge (var y) 0)
  - expr: (le (add (var x) (var y)) 1)
`)
	//
	assert.Equal(t, "simple_lp", prob.Name)
	assert.Equal(t, Minimize, prob.Objective.Sense)
	assert.Len(t, prob.Variables, 2)
	assert.Len(t, prob.Constraints, 3)
	// Scalar is the default shape.
	require.NotNil(t, prob.Variable("x"))
	assert.Equal(t, ir.ScalarShape(), prob.Variable("x").Shape)
	assert.Nil(t, prob.Variable("z"))
	// Objective parses into a call tree rooted at add.
	call, ok := prob.Objective.Expr.(*Call)
	require.True(t, ok)
	assert.Equal(t, "add", call.Op)
	assert.Len(t, call.Args, 2)
}

func TestLoad_Declarations(t *testing.T) {
	prob := LoadString(t, `
name: portfolio
variables:
  - name: w
    shape: [3]
  - name: k
    integer: true
parameters:
  - name: mu
    shape: [3]
  - name: Sigma
    shape: [3, 3]
objective:
  expr: (sum_squares (var w))
`)
	//
	require.NotNil(t, prob.Variable("w"))
	assert.Equal(t, ir.VectorShape(3), prob.Variable("w").Shape)
	assert.True(t, prob.Variable("k").Integer)
	require.NotNil(t, prob.Parameter("mu"))
	assert.Equal(t, ir.VectorShape(3), prob.Parameter("mu").Shape)
	assert.Equal(t, ir.MatrixShape(3, 3), prob.Parameter("Sigma").Shape)
	// An omitted sense defaults to minimisation.
	assert.Equal(t, Minimize, prob.Objective.Sense)
}

func TestLoad_Maximize(t *testing.T) {
	prob := LoadString(t, `
name: maxprob
variables:
  - name: x
objective:
  sense: maximize
  expr: (var x)
`)
	//
	assert.Equal(t, Maximize, prob.Objective.Sense)
}

func TestLoad_NamedConstraints(t *testing.T) {
	prob := LoadString(t, `
name: named
variables:
  - name: x
objective:
  expr: (var x)
constraints:
  - name: lower
    expr: (ge (var x) 0)
  - expr: (le (var x) 1)
`)
	//
	require.Len(t, prob.Constraints, 2)
	assert.Equal(t, "lower", prob.Constraints[0].Name)
	assert.Equal(t, "", prob.Constraints[1].Name)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does_not_exist.yaml")
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"not yaml": "{{{",
		"missing name": `
variables:
  - name: x
objective:
  expr: (var x)
`,
		"missing objective": `
name: p
variables:
  - name: x
`,
		"duplicate variable": `
name: p
variables:
  - name: x
  - name: x
objective:
  expr: (var x)
`,
		"parameter shadows variable": `
name: p
variables:
  - name: x
parameters:
  - name: x
objective:
  expr: (var x)
`,
		"unknown sense": `
name: p
variables:
  - name: x
objective:
  sense: minimise
  expr: (var x)
`,
		"zero-length shape": `
name: p
variables:
  - name: x
    shape: [0]
objective:
  expr: (var x)
`,
		"too many dimensions": `
name: p
variables:
  - name: x
    shape: [2, 2, 2]
objective:
  expr: (var x)
`,
		"undeclared variable": `
name: p
variables:
  - name: x
objective:
  expr: (var y)
`,
		"undeclared parameter": `
name: p
variables:
  - name: x
objective:
  expr: (param x)
`,
		"malformed reference": `
name: p
variables:
  - name: x
objective:
  expr: (var x y)
`,
		"malformed expression": `
name: p
variables:
  - name: x
objective:
  expr: (add (var x)
`,
		"empty application": `
name: p
variables:
  - name: x
objective:
  expr: ()
`,
		"non-numeric symbol": `
name: p
variables:
  - name: x
objective:
  expr: (add (var x) one)
`,
		"malformed constraint": `
name: p
variables:
  - name: x
objective:
  expr: (var x)
constraints:
  - expr: (ge (var y) 0)
`,
	}
	//
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestParseExpr(t *testing.T) {
	prob := LoadString(t, `
name: p
variables:
  - name: x
objective:
  expr: (var x)
`)
	//
	expr, err := prob.ParseExpr("(neg (var x))")
	require.NoError(t, err)
	//
	call, ok := expr.(*Call)
	require.True(t, ok)
	assert.Equal(t, "neg", call.Op)
	//
	_, err = prob.ParseExpr("")
	assert.Error(t, err)
}

// ============================================================================
// Helpers
// ============================================================================

func LoadString(t *testing.T, input string) *Problem {
	prob, err := Load([]byte(input))
	require.NoError(t, err)

	return prob
}
