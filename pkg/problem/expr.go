package problem

// Expr is an untyped host expression.  The host model is deliberately loose:
// operator applications carry their operator token as data, and the
// normalisation stage maps tokens onto the typed IR through a closed table.
// This mirrors how host modelling layers dispatch on operator identity at
// runtime, whilst keeping the set of accepted operators explicit downstream.
type Expr interface {
	hostExpr()
}

// Ref is a reference to a declared variable or parameter.  Which of the two
// it refers to is resolved against the enclosing problem's declarations.
type Ref struct {
	Name string
}

// Lit is a numeric literal.
type Lit struct {
	Value float64
}

// Call is the application of a named operator to one or more arguments.
type Call struct {
	Op   string
	Args []Expr
}

func (*Ref) hostExpr()  {}
func (*Lit) hostExpr()  {}
func (*Call) hostExpr() {}
