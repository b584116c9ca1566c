package ir

import "fmt"

// Shape describes the dimensions of an expression: a scalar, a fixed-length
// vector or a fixed-size matrix.  Shapes are values and are compared
// structurally.
type Shape struct {
	rows uint
	cols uint
}

// ScalarShape constructs the shape of a scalar expression.
func ScalarShape() Shape {
	return Shape{0, 0}
}

// VectorShape constructs the shape of a vector of n components.
func VectorShape(n uint) Shape {
	return Shape{n, 0}
}

// MatrixShape constructs the shape of an m x n matrix.
func MatrixShape(m uint, n uint) Shape {
	return Shape{m, n}
}

// IsScalar checks whether this is the scalar shape.
func (p Shape) IsScalar() bool { return p.rows == 0 }

// IsVector checks whether this is a vector shape.
func (p Shape) IsVector() bool { return p.rows != 0 && p.cols == 0 }

// IsMatrix checks whether this is a matrix shape.
func (p Shape) IsMatrix() bool { return p.rows != 0 && p.cols != 0 }

// Len returns the number of components of a vector shape, or the number of
// rows of a matrix shape.
func (p Shape) Len() uint { return p.rows }

// Dims returns the row and column dimensions of this shape.
func (p Shape) Dims() (uint, uint) { return p.rows, p.cols }

func (p Shape) String() string {
	switch {
	case p.IsScalar():
		return "scalar"
	case p.IsVector():
		return fmt.Sprintf("vector[%d]", p.rows)
	default:
		return fmt.Sprintf("matrix[%d,%d]", p.rows, p.cols)
	}
}

// JoinElementwise determines the shape resulting from applying an elementwise
// binary operation to operands of the given shapes.  Scalars broadcast against
// any operand; otherwise both shapes must agree exactly.  The second result is
// false when the shapes are incompatible.
func JoinElementwise(lhs Shape, rhs Shape) (Shape, bool) {
	switch {
	case lhs == rhs:
		return lhs, true
	case lhs.IsScalar():
		return rhs, true
	case rhs.IsScalar():
		return lhs, true
	default:
		return Shape{}, false
	}
}

// JoinMul determines the shape resulting from a multiplication of operands of
// the given shapes.  Scalar multiplication broadcasts; a matrix times a
// compatible vector contracts to a vector; two vectors of equal length
// contract to their inner product.  Anything else is incompatible.
func JoinMul(lhs Shape, rhs Shape) (Shape, bool) {
	switch {
	case lhs.IsScalar():
		return rhs, true
	case rhs.IsScalar():
		return lhs, true
	case lhs.IsMatrix() && rhs.IsVector() && lhs.cols == rhs.rows:
		return VectorShape(lhs.rows), true
	case lhs.IsVector() && rhs.IsVector() && lhs.rows == rhs.rows:
		return ScalarShape(), true
	default:
		return Shape{}, false
	}
}
