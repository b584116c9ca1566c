package rewrite

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// RequestKind is the request tag understood by the rewrite engine.
const RequestKind = "PerformRewrite"

// Request is the exchange document handed to the external rewrite engine.
// It is fully self-describing: every name referenced by the encoded
// expressions appears in the domains list or belongs to the problem's
// declared parameters, and no host-language state is implied.
type Request struct {
	// Kind is always RequestKind.
	Kind string `json:"request"`
	// ProbName names the problem being rewritten.
	ProbName string `json:"prob_name"`
	// Sense is the objective direction, "min" or "max".
	Sense string `json:"sense"`
	// Domains lists the box domain of every variable, in declared order.
	Domains []DomainEntry `json:"domains"`
	// Target holds the encoded objective and constraints.
	Target Target `json:"target"`
}

// Target holds the encoded objective function and named constraints.
type Target struct {
	// ObjFun is the objective in S-expression form, wrapped in an objFun
	// marker.
	ObjFun string `json:"obj_fun"`
	// Constrs are the named constraints in declared order.
	Constrs []Constraint `json:"constrs"`
}

// Response is the rewrite engine's answer: the same target, algebraically
// normalised.  Its contents are not interpreted beyond decoding.
type Response struct {
	ProbName string `json:"prob_name"`
	Target   Target `json:"target"`
}

// Constraint pairs a constraint name with its encoded S-expression.  On the
// wire it is a two-element array.
type Constraint struct {
	Name string
	Expr string
}

// MarshalJSON encodes this constraint as ["name", "(sexpr)"].
func (p Constraint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{p.Name, p.Expr})
}

// UnmarshalJSON decodes a two-element ["name", "(sexpr)"] array.
func (p *Constraint) UnmarshalJSON(bytes []byte) error {
	var fields []string
	//
	if err := json.Unmarshal(bytes, &fields); err != nil {
		return err
	} else if len(fields) != 2 {
		return errors.Errorf("malformed constraint entry (%d fields)", len(fields))
	}
	//
	p.Name, p.Expr = fields[0], fields[1]
	//
	return nil
}

// DomainEntry pairs a variable name with its bounds.  On the wire it is a
// two-element array.
type DomainEntry struct {
	Variable string
	Bounds   Bounds
}

// MarshalJSON encodes this entry as ["x", [lower, upper, lf, uf]].
func (p DomainEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Variable, p.Bounds})
}

// UnmarshalJSON decodes a two-element ["x", [lower, upper, lf, uf]] array.
func (p *DomainEntry) UnmarshalJSON(bytes []byte) error {
	var fields []json.RawMessage
	//
	if err := json.Unmarshal(bytes, &fields); err != nil {
		return err
	} else if len(fields) != 2 {
		return errors.Errorf("malformed domain entry (%d fields)", len(fields))
	}
	//
	if err := json.Unmarshal(fields[0], &p.Variable); err != nil {
		return err
	}
	//
	return json.Unmarshal(fields[1], &p.Bounds)
}

// Bounds is a box domain in wire form.  Every bound is a decimal string,
// with unbounded sides using the fixed tokens "-inf" / "inf"; the finiteness
// flags are "1" or "0".
type Bounds struct {
	Lower       string
	Upper       string
	LowerFinite bool
	UpperFinite bool
}

// MarshalJSON encodes these bounds as [lower, upper, lf, uf].
func (p Bounds) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{p.Lower, p.Upper, flag(p.LowerFinite), flag(p.UpperFinite)})
}

// UnmarshalJSON decodes a four-element [lower, upper, lf, uf] array.
func (p *Bounds) UnmarshalJSON(bytes []byte) error {
	var fields []string
	//
	if err := json.Unmarshal(bytes, &fields); err != nil {
		return err
	} else if len(fields) != 4 {
		return errors.Errorf("malformed bounds (%d fields)", len(fields))
	}
	//
	p.Lower, p.Upper = fields[0], fields[1]
	p.LowerFinite, p.UpperFinite = fields[2] == "1", fields[3] == "1"
	//
	return nil
}

func flag(b bool) string {
	if b {
		return "1"
	}

	return "0"
}

// String returns the canonical JSON form of this request.  Field order is
// fixed and all lists preserve declared order, so the result is
// deterministic: the same problem always produces byte-identical output.
func (p *Request) String() string {
	bytes, err := json.Marshal(p)
	// Marshalling a request cannot fail: all fields are strings or arrays
	// thereof.
	if err != nil {
		panic(err)
	}
	//
	return string(bytes)
}
