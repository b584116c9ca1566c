package translate

import (
	"fmt"

	"github.com/convexlab/go-cvxlean/pkg/ir"
)

// UnsupportedExpressionError indicates a host operator (or host feature, such
// as an integer-restricted variable) for which no IR mapping exists.  The
// path locates the offending node within the problem.
type UnsupportedExpressionError struct {
	// Op is the offending operator token or feature description.
	Op string
	// Path locates the node within the problem, e.g. "objective/add[1]".
	Path string
}

func (p *UnsupportedExpressionError) Error() string {
	return fmt.Sprintf("unsupported expression %q at %s", p.Op, p.Path)
}

// ShapeMismatchError indicates that structural shape inference failed because
// two operand shapes are incompatible under the applied operator.
type ShapeMismatchError struct {
	// Op is the operator whose operands disagree.
	Op string
	// Path locates the node within the problem.
	Path string
	// Lhs and Rhs are the two incompatible shapes.
	Lhs ir.Shape
	Rhs ir.Shape
}

func (p *ShapeMismatchError) Error() string {
	return fmt.Sprintf("incompatible shapes %s and %s for %q at %s", p.Lhs, p.Rhs, p.Op, p.Path)
}

// DuplicateConstraintNameError indicates two constraints were allocated the
// same name.  Explicit names are never silently renamed; a collision aborts
// the conversion.
type DuplicateConstraintNameError struct {
	// Name is the colliding constraint name.
	Name string
	// First and Second are the 1-based positions of the colliding
	// constraints, in declared order.
	First  uint
	Second uint
}

func (p *DuplicateConstraintNameError) Error() string {
	return fmt.Sprintf("duplicate constraint name %q (constraints %d and %d)", p.Name, p.First, p.Second)
}
