package expr

// precedence levels, tight to loose: ! > && > || > -> > <->
const (
	precEq = iota
	precImpl
	precOr
	precAnd
	precNot
	precAtom
)

func precOf(e Expr) int {
	switch e.(type) {
	case Eq:
		return precEq
	case Impl:
		return precImpl
	case Or:
		return precOr
	case And:
		return precAnd
	case Not:
		return precNot
	default:
		return precAtom
	}
}

// String renders e using the fixed precedence table from the spec,
// parenthesizing a subexpression iff its operator binds more loosely
// than the incoming context. Chains of the same operator are printed
// flat, without parentheses on either side.
func (c Const) String() string {
	if c.Value {
		return "1"
	}
	return "0"
}

func (v Var) String() string { return v.Name }

func (n Not) String() string { return "!" + wrap(n.X, precNot, false) }

func (a And) String() string { return wrap(a.L, precAnd, false) + " && " + wrap(a.R, precAnd, true) }

func (o Or) String() string { return wrap(o.L, precOr, false) + " || " + wrap(o.R, precOr, true) }

func (i Impl) String() string { return wrap(i.L, precImpl, false) + " -> " + wrap(i.R, precImpl, true) }

func (e Eq) String() string { return wrap(e.L, precEq, false) + " <-> " + wrap(e.R, precEq, true) }

// wrap renders sub in parentheses iff its precedence is strictly lower
// than ctxPrec; equal precedence is never parenthesized, on either side
// (the bool argument is unused). The parser nests same-precedence
// binary operators on the right, so a parsed chain prints flat and
// re-parses to the same tree; a left-nested chain built in code prints
// the same way and re-parses right-nested.
func wrap(sub Expr, ctxPrec int, _ bool) string {
	if precOf(sub) < ctxPrec {
		return "(" + sub.String() + ")"
	}
	return sub.String()
}
