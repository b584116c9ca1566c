package problem

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/convexlab/go-cvxlean/pkg/ir"
	"github.com/convexlab/go-cvxlean/pkg/sexp"
)

// Problem files are YAML documents declaring variables, parameters, an
// objective and constraints.  Expressions are embedded as S-expression
// strings, e.g.:
//
//	name: simple_lp
//	variables:
//	  - name: x
//	  - name: y
//	objective:
//	  sense: minimize
//	  expr: (add (var x) (mul 2 (var y)))
//	constraints:
//	  - expr: (ge (var x) 0)
//	  - expr: (ge (var y) 0)
//	  - expr: (le (add (var x) (var y)) 1)
type problemFile struct {
	Name        string           `yaml:"name"`
	Variables   []declaration    `yaml:"variables"`
	Parameters  []declaration    `yaml:"parameters"`
	Objective   objectiveSection `yaml:"objective"`
	Constraints []constraintItem `yaml:"constraints"`
}

type declaration struct {
	Name    string `yaml:"name"`
	Shape   []uint `yaml:"shape"`
	Integer bool   `yaml:"integer"`
}

type objectiveSection struct {
	Sense string `yaml:"sense"`
	Expr  string `yaml:"expr"`
}

type constraintItem struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// LoadFile reads and parses a problem description from a YAML file.
func LoadFile(filename string) (*Problem, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Load(bytes)
}

// Load parses a problem description from YAML text.
func Load(bytes []byte) (*Problem, error) {
	var file problemFile
	//
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, errors.Wrap(err, "malformed problem file")
	}
	//
	if file.Name == "" {
		return nil, errors.New("problem file missing name")
	}
	// Build declarations first, so that expressions can be resolved against
	// them.
	prob := &Problem{Name: file.Name}
	//
	for _, v := range file.Variables {
		shape, err := parseShape(v.Shape)
		if err != nil {
			return nil, errors.Wrapf(err, "variable %q", v.Name)
		}
		//
		if prob.Variable(v.Name) != nil {
			return nil, errors.Errorf("variable %q declared twice", v.Name)
		}
		//
		prob.Variables = append(prob.Variables, Variable{v.Name, shape, v.Integer})
	}
	//
	for _, v := range file.Parameters {
		shape, err := parseShape(v.Shape)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %q", v.Name)
		}
		//
		if prob.Parameter(v.Name) != nil || prob.Variable(v.Name) != nil {
			return nil, errors.Errorf("parameter %q declared twice", v.Name)
		}
		//
		prob.Parameters = append(prob.Parameters, Parameter{v.Name, shape})
	}
	// Objective
	sense, err := parseSense(file.Objective.Sense)
	if err != nil {
		return nil, err
	}
	//
	objExpr, err := prob.parseExpr(file.Objective.Expr)
	if err != nil {
		return nil, errors.Wrap(err, "objective")
	}
	//
	prob.Objective = Objective{sense, objExpr}
	// Constraints
	for i, c := range file.Constraints {
		expr, err := prob.parseExpr(c.Expr)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %d", i+1)
		}
		//
		prob.Constraints = append(prob.Constraints, Constraint{c.Name, expr})
	}
	//
	return prob, nil
}

// ParseExpr parses a single host expression given in S-expression form,
// resolving variable and parameter references against this problem's
// declarations.
func (p *Problem) ParseExpr(text string) (Expr, error) {
	return p.parseExpr(text)
}

func parseShape(dims []uint) (ir.Shape, error) {
	switch len(dims) {
	case 0:
		return ir.ScalarShape(), nil
	case 1:
		if dims[0] == 0 {
			return ir.Shape{}, errors.New("zero-length shape")
		}

		return ir.VectorShape(dims[0]), nil
	case 2:
		if dims[0] == 0 || dims[1] == 0 {
			return ir.Shape{}, errors.New("zero-length shape")
		}

		return ir.MatrixShape(dims[0], dims[1]), nil
	default:
		return ir.Shape{}, errors.Errorf("shape has %d dimensions", len(dims))
	}
}

func parseSense(sense string) (Sense, error) {
	switch sense {
	case "minimize", "":
		return Minimize, nil
	case "maximize":
		return Maximize, nil
	default:
		return Minimize, errors.Errorf("unknown objective sense %q", sense)
	}
}

func (p *Problem) parseExpr(text string) (Expr, error) {
	if text == "" {
		return nil, errors.New("missing expression")
	}
	//
	sExp, err := sexp.Parse(text)
	if err != nil {
		return nil, err
	}
	//
	return p.fromSExp(sExp)
}

func (p *Problem) fromSExp(sExp sexp.SExp) (Expr, error) {
	if symbol := sExp.AsSymbol(); symbol != nil {
		value, err := strconv.ParseFloat(symbol.Value, 64)
		if err != nil {
			return nil, errors.Errorf("unexpected symbol %q (expected number)", symbol.Value)
		}

		return &Lit{value}, nil
	}
	// Must be a list
	list := sExp.AsList()
	//
	if list.Len() == 0 {
		return nil, errors.New("empty application")
	} else if list.Get(0).AsSymbol() == nil {
		return nil, errors.Errorf("non-symbol operator in %s", list.String())
	}
	//
	op := list.Get(0).AsSymbol().Value
	// References are resolved (and their tag checked) here; all other
	// operators are passed through for the normaliser to interpret.
	if op == "var" || op == "param" {
		return p.fromRef(op, list)
	}
	//
	args := make([]Expr, list.Len()-1)
	//
	for i := 1; i < list.Len(); i++ {
		arg, err := p.fromSExp(list.Get(i))
		if err != nil {
			return nil, err
		}

		args[i-1] = arg
	}
	//
	return &Call{op, args}, nil
}

func (p *Problem) fromRef(tag string, list *sexp.List) (Expr, error) {
	if list.Len() != 2 || list.Get(1).AsSymbol() == nil {
		return nil, errors.Errorf("malformed reference %s", list.String())
	}
	//
	name := list.Get(1).AsSymbol().Value
	//
	switch {
	case tag == "var" && p.Variable(name) != nil:
		return &Ref{name}, nil
	case tag == "param" && p.Parameter(name) != nil:
		return &Ref{name}, nil
	default:
		return nil, errors.Errorf("undeclared %s %q", tag, name)
	}
}
