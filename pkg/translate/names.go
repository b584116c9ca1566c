package translate

import (
	"fmt"
)

// Allocator assigns a unique, stable name to every constraint of a single
// conversion.  Explicit user names are kept verbatim; anonymous constraints
// are named after their 1-based position in declared order.  Any collision
// aborts the conversion, since silently renaming would break the link between
// the user's problem and the generated artifact.  Allocators are scoped to
// one pipeline invocation and never shared.
type Allocator struct {
	// Maps each allocated name to the (1-based) position it was allocated
	// at, for error reporting.
	seen map[string]uint
}

// NewAllocator constructs an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{seen: make(map[string]uint)}
}

// Allocate determines the name for the constraint at a given 1-based
// position, where explicit is the user-given name (or empty for anonymous
// constraints).  Positions must be presented in declared order.
func (p *Allocator) Allocate(position uint, explicit string) (string, error) {
	name := explicit
	//
	if name == "" {
		name = fmt.Sprintf("c%d", position)
	}
	//
	if first, ok := p.seen[name]; ok {
		return "", &DuplicateConstraintNameError{name, first, position}
	}
	//
	p.seen[name] = position
	//
	return name, nil
}
