package translate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convexlab/go-cvxlean/pkg/ir"
	"github.com/convexlab/go-cvxlean/pkg/problem"
)

func TestDomains_Unconstrained(t *testing.T) {
	domains := Extract(t, testProblem)
	// One domain per declared variable, in declared order.
	require.Len(t, domains, 5)
	assert.Equal(t, "x", domains[0].Variable)
	assert.Equal(t, "y", domains[1].Variable)
	assert.Equal(t, "w", domains[2].Variable)
	assert.Equal(t, "v", domains[3].Variable)
	assert.Equal(t, "k", domains[4].Variable)
	// Unconstrained variables are unbounded on both sides.
	assert.False(t, domains[0].BoundedBelow())
	assert.False(t, domains[0].BoundedAbove())
	// Integrality is carried over from the declaration.
	assert.False(t, domains[0].Integer)
	assert.True(t, domains[4].Integer)
}

func TestDomains_Bounds(t *testing.T) {
	domains := Extract(t, testProblem,
		"(ge (var x) 0)",
		"(le (var x) 1)",
		"(le (var y) 10)")
	//
	CheckDomain(t, domains[0], 0, 1)
	CheckDomain(t, domains[1], math.Inf(-1), 10)
}

func TestDomains_FlippedOperands(t *testing.T) {
	// A constant on the left flips the comparison.
	domains := Extract(t, testProblem,
		"(le 0 (var x))",
		"(ge 1 (var x))")
	//
	CheckDomain(t, domains[0], 0, 1)
}

func TestDomains_StrictComparisons(t *testing.T) {
	// Strict bounds contribute the same closed interval.
	domains := Extract(t, testProblem,
		"(gt (var x) 0)",
		"(lt (var x) 1)")
	//
	CheckDomain(t, domains[0], 0, 1)
}

func TestDomains_TightestWins(t *testing.T) {
	domains := Extract(t, testProblem,
		"(ge (var x) 0)",
		"(ge (var x) 2)",
		"(le (var x) 10)",
		"(le (var x) 5)")
	//
	CheckDomain(t, domains[0], 2, 5)
}

func TestDomains_Contradiction(t *testing.T) {
	// A contradictory pair passes through for the solver to report.
	domains := Extract(t, testProblem,
		"(ge (var x) 3)",
		"(le (var x) 1)")
	//
	CheckDomain(t, domains[0], 3, 1)
}

func TestDomains_VectorBroadcast(t *testing.T) {
	// A vector variable bounded against a scalar constant is a box bound on
	// every component.
	domains := Extract(t, testProblem, "(ge (var w) 0)")
	//
	CheckDomain(t, domains[2], 0, math.Inf(1))
}

func TestDomains_GenericConstraintsIgnored(t *testing.T) {
	domains := Extract(t, testProblem,
		// Equalities are not box bounds.
		"(eq (var x) 1)",
		// Nor are relations over compound expressions.
		"(le (add (var x) (var y)) 1)",
		"(ge (square (var x)) 0)",
		// Nor comparisons against parameters.
		"(le (var x) (param a))")
	//
	CheckDomain(t, domains[0], math.Inf(-1), math.Inf(1))
	CheckDomain(t, domains[1], math.Inf(-1), math.Inf(1))
}

// ============================================================================
// Helpers
// ============================================================================

// Load the shared declarations, normalise the given constraints and extract
// the resulting domains.
func Extract(t *testing.T, input string, constraints ...string) []Domain {
	prob := LoadProblem(t, input)
	normalizer := NewNormalizer(prob)
	exprs := make([]ir.Expr, len(constraints))
	//
	for i, text := range constraints {
		expr, err := normalizer.Constraint(uint(i+1), problem.Constraint{Expr: ParseHost(t, prob, text)})
		require.NoError(t, err)
		//
		exprs[i] = expr
	}
	//
	return ExtractDomains(prob, exprs)
}

func CheckDomain(t *testing.T, domain Domain, lower float64, upper float64) {
	assert.Equal(t, lower, domain.Lower, "lower bound of %s", domain.Variable)
	assert.Equal(t, upper, domain.Upper, "upper bound of %s", domain.Variable)
}
