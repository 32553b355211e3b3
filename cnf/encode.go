package cnf

import (
	"fmt"

	"github.com/crillab/varsat/expr"
)

// Encode Tseitin-encodes e into r's clause set and returns the id of
// the fresh variable equisatisfiable with e's top connective. Each
// allocated id t enforces t <-> op(children) via the clause templates
// of §4.3; Var leaves reuse a single id across occurrences of the same
// name, and Call nodes reuse a single id across identical textual
// forms within this registry.
func (r *Registry) Encode(e expr.Expr) (int, error) {
	switch n := e.(type) {
	case expr.Const:
		t := r.newVar()
		if r.policy == Bound {
			if n.Value {
				r.addClause(t)
			} else {
				r.addClause(-t)
			}
		}
		return t, nil

	case expr.Var:
		return r.varForName(n.Name), nil

	case expr.Not:
		ta, err := r.Encode(n.X)
		if err != nil {
			return 0, err
		}
		t := r.newVar()
		r.addClause(-t, -ta)
		r.addClause(t, ta)
		return t, nil

	case expr.And:
		ta, err := r.Encode(n.L)
		if err != nil {
			return 0, err
		}
		tb, err := r.Encode(n.R)
		if err != nil {
			return 0, err
		}
		t := r.newVar()
		r.addClause(-t, ta)
		r.addClause(-t, tb)
		r.addClause(t, -ta, -tb)
		return t, nil

	case expr.Or:
		ta, err := r.Encode(n.L)
		if err != nil {
			return 0, err
		}
		tb, err := r.Encode(n.R)
		if err != nil {
			return 0, err
		}
		t := r.newVar()
		r.addClause(-t, ta, tb)
		r.addClause(t, -ta)
		r.addClause(t, -tb)
		return t, nil

	case expr.Impl:
		// a -> b  ==  !a || b
		return r.Encode(expr.Or{L: expr.Not{X: n.L}, R: n.R})

	case expr.Eq:
		// a <-> b  ==  (!a || b) && (a || !b)
		return r.Encode(expr.And{
			L: expr.Or{L: expr.Not{X: n.L}, R: n.R},
			R: expr.Or{L: n.L, R: expr.Not{X: n.R}},
		})

	case expr.Call:
		key := n.String()
		if id, ok := r.callIDs[key]; ok {
			return id, nil
		}
		id := r.varForName(key)
		r.callIDs[key] = id
		return id, nil

	case expr.Any:
		return r.newVar(), nil

	default:
		return 0, fmt.Errorf("cnf: unknown expression kind %T", e)
	}
}
