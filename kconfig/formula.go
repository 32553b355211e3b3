package kconfig

import "github.com/crillab/varsat/expr"

// LocalFormula returns the per-symbol dependency formula for name, as
// described in §4.5: NAME -> depends; for each of NAME's own
// ItemSelects, (NAME && visibility) -> target; and, when NAME has no
// prompt of its own, NAME <-> the disjunction of everything that can
// force it on (other symbols' selects targeting NAME, plus NAME's own
// defaults). Choice membership adds mutual exclusion with siblings,
// plus a disjunction over the group when the choice is required.
//
// The second return value is false iff name is not in the dictionary,
// in which case the formula is expr.True.
func (d *Dictionary) LocalFormula(name string) (expr.Expr, bool) {
	s, ok := d.Symbols[name]
	if !ok {
		return expr.True, false
	}
	if s.local == nil {
		s.local = s.buildLocalFormula(d)
	}
	return s.local, true
}

func (s *Symbol) buildLocalFormula(d *Dictionary) expr.Expr {
	self := expr.Var{Name: s.Name}
	f := expr.True

	if s.Dependency != "" {
		if dep, err := expr.Parse(s.Dependency); err == nil {
			f = expr.And{L: f, R: expr.Impl{L: self, R: dep}}
		}
	}

	for _, sel := range s.Selects {
		target, err := expr.Parse(sel.Target)
		if err != nil {
			continue
		}
		activator := expr.And{L: self, R: parseVisibility(sel.Visibility)}
		f = expr.And{L: f, R: expr.Impl{L: activator, R: target}}
	}

	if s.HasPrompts == 0 {
		var terms []expr.Expr
		for _, other := range d.Symbols {
			for _, sel := range other.Selects {
				if sel.Target != s.Name {
					continue
				}
				terms = append(terms, expr.And{
					L: expr.Var{Name: other.Name},
					R: parseVisibility(sel.Visibility),
				})
			}
		}
		for _, def := range s.Defaults {
			terms = append(terms, expr.And{
				L: parseVisibility(def.Visibility),
				R: parseVisibility(def.Value),
			})
		}
		f = expr.And{L: f, R: expr.Eq{L: self, R: orAll(terms)}}
	}

	if s.ChoiceGroup != "" {
		if c, ok := d.Choices[s.ChoiceGroup]; ok {
			for _, member := range c.Members {
				if member == s.Name {
					continue
				}
				f = expr.And{L: f, R: expr.Impl{L: self, R: expr.Not{X: expr.Var{Name: member}}}}
			}
			if c.Required && len(c.Members) > 0 {
				items := make([]expr.Expr, len(c.Members))
				for i, member := range c.Members {
					items[i] = expr.Var{Name: member}
				}
				f = expr.And{L: f, R: orAll(items)}
			}
		}
	}

	return f
}

// parseVisibility parses an expression that may be the empty string,
// which §6 defines as literal true. A malformed expression also falls
// back to true rather than aborting the whole dictionary's formula
// computation over one bad fact.
func parseVisibility(text string) expr.Expr {
	if text == "" {
		return expr.True
	}
	e, err := expr.Parse(text)
	if err != nil {
		return expr.True
	}
	return e
}

func orAll(terms []expr.Expr) expr.Expr {
	if len(terms) == 0 {
		return expr.False
	}
	f := terms[0]
	for _, t := range terms[1:] {
		f = expr.Or{L: f, R: t}
	}
	return f
}
