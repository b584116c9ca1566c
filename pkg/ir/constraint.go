package ir

// Constraint pairs a relational expression with the unique name allocated to
// it.  Names are pairwise distinct within a problem and stable across
// repeated conversions of the same input.
type Constraint struct {
	// Unique name of this constraint.
	Name string
	// Relational expression (i.e. a Binary whose kind satisfies IsRelation).
	Expr Expr
}
