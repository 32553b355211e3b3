package expr

// Simplify rewrites e bottom-up with the fixpoint-free rule set below,
// grounded on undertaker's BoolExpSimplifier: each connective looks
// only at its own (already-simplified) children, never re-descends,
// and falls back to reconstructing the node unchanged when no rule
// fires. Const, Var and Any are returned as-is; Call and Eq have no
// rules of their own and are rebuilt from their simplified children.
func Simplify(e Expr) Expr {
	return Walk(e, Visitor{
		Const: func(v Const) Expr { return v },
		Var:   func(v Var) Expr { return v },
		Not:   simplifyNot,
		And:   simplifyAnd,
		Or:    simplifyOr,
		Impl:  simplifyImpl,
		Eq:    func(l, r Expr) Expr { return Eq{L: l, R: r} },
		Call: func(name string, args []Expr) Expr {
			return Call{Name: name, Args: args}
		},
		Any: func() Expr { return Any{} },
	})
}

func simplifyNot(x Expr) Expr {
	if c, ok := x.(Const); ok {
		return Const{Value: !c.Value}
	}
	if n, ok := x.(Not); ok {
		return n.X
	}
	return Not{X: x}
}

// isNegationOf reports whether other is !x, structurally.
func isNegationOf(x, other Expr) bool {
	n, ok := other.(Not)
	return ok && n.X.Equal(x)
}

func simplifyAnd(l, r Expr) Expr {
	lc, lIsConst := l.(Const)
	rc, rIsConst := r.(Const)
	if lIsConst || rIsConst {
		c := lc
		other := r
		if !lIsConst {
			c = rc
			other = l
		}
		if c.Value {
			return other
		}
		return c
	}

	// X && X
	if l.Equal(r) {
		return l
	}

	// X && !X
	if isNegationOf(l, r) || isNegationOf(r, l) {
		return Const{Value: false}
	}

	return And{L: l, R: r}
}

func simplifyOr(l, r Expr) Expr {
	lc, lIsConst := l.(Const)
	rc, rIsConst := r.(Const)
	if lIsConst || rIsConst {
		c := lc
		other := r
		if !lIsConst {
			c = rc
			other = l
		}
		if !c.Value {
			return other
		}
		return c
	}

	// X || !X
	if isNegationOf(l, r) || isNegationOf(r, l) {
		return Const{Value: true}
	}

	// X || X
	if l.Equal(r) {
		return l
	}

	return Or{L: l, R: r}
}

func simplifyImpl(l, r Expr) Expr {
	if c, ok := r.(Const); ok {
		if c.Value {
			return Const{Value: true}
		}
		return simplifyNot(l)
	}
	return Impl{L: l, R: r}
}
