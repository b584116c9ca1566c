package lean

import (
	"fmt"
)

// Template selects one of the fixed output scaffolds wrapped around the
// rendered objective and constraint block.
type Template string

const (
	// Basic emits the problem declaration only.
	Basic Template = "basic"
	// WithSolver additionally emits a numeric-solve directive and
	// result-printing commands.
	WithSolver Template = "with_solver"
	// WithProof additionally emits a placeholder proof obligation.
	WithProof Template = "with_proof"
)

// UnknownTemplateError indicates a template selector outside the closed set
// of scaffolds.
type UnknownTemplateError struct {
	Name string
}

func (p *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q", p.Name)
}

// ParseTemplate validates a template selector against the closed set of
// scaffolds.
func ParseTemplate(name string) (Template, error) {
	switch Template(name) {
	case Basic, WithSolver, WithProof:
		return Template(name), nil
	default:
		return "", &UnknownTemplateError{name}
	}
}
