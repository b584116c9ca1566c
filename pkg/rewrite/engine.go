package rewrite

import (
	"fmt"
)

// Engine abstracts the external rewrite collaborator which performs
// domain-aware algebraic normalisation of the exchange document.  The engine
// runs out-of-process conceptually; its latency and failure modes surface
// here as a single pass/fail boundary, with no retries.
type Engine interface {
	// Rewrite submits a request and returns the rewritten target, or an
	// error describing why the engine refused it.
	Rewrite(request *Request) (*Response, error)
}

// ExternalRewriteError wraps a failure reported by the rewrite engine.  The
// underlying cause is passed through uninterpreted.
type ExternalRewriteError struct {
	Err error
}

func (p *ExternalRewriteError) Error() string {
	return fmt.Sprintf("external rewrite failed: %v", p.Err)
}

// Unwrap exposes the engine's reported failure.
func (p *ExternalRewriteError) Unwrap() error {
	return p.Err
}
