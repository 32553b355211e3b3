package expr

// Visitor is the two-slot traversal protocol described by the spec:
// for a binary node, the already-visited left and right children are
// handed to the matching callback; for unary/leaf nodes only the
// relevant callback fires. The protocol is total — every node kind has
// a hook — so a Visitor with a nil hook for a kind that occurs in the
// tree is a programming error and Walk panics rather than silently
// skipping it.
type Visitor struct {
	Const func(v Const) Expr
	Var   func(v Var) Expr
	Not   func(x Expr) Expr
	And   func(l, r Expr) Expr
	Or    func(l, r Expr) Expr
	Impl  func(l, r Expr) Expr
	Eq    func(l, r Expr) Expr
	Call  func(name string, args []Expr) Expr
	Any   func() Expr
}

// Walk visits e bottom-up: children are walked first, and the visited
// results are passed to the dispatch hook for e's own kind.
func Walk(e Expr, v Visitor) Expr {
	switch n := e.(type) {
	case Const:
		if v.Const == nil {
			panic("expr: visitor has no Const hook")
		}
		return v.Const(n)
	case Var:
		if v.Var == nil {
			panic("expr: visitor has no Var hook")
		}
		return v.Var(n)
	case Not:
		if v.Not == nil {
			panic("expr: visitor has no Not hook")
		}
		return v.Not(Walk(n.X, v))
	case And:
		if v.And == nil {
			panic("expr: visitor has no And hook")
		}
		return v.And(Walk(n.L, v), Walk(n.R, v))
	case Or:
		if v.Or == nil {
			panic("expr: visitor has no Or hook")
		}
		return v.Or(Walk(n.L, v), Walk(n.R, v))
	case Impl:
		if v.Impl == nil {
			panic("expr: visitor has no Impl hook")
		}
		return v.Impl(Walk(n.L, v), Walk(n.R, v))
	case Eq:
		if v.Eq == nil {
			panic("expr: visitor has no Eq hook")
		}
		return v.Eq(Walk(n.L, v), Walk(n.R, v))
	case Call:
		if v.Call == nil {
			panic("expr: visitor has no Call hook")
		}
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = Walk(a, v)
		}
		return v.Call(n.Name, args)
	case Any:
		if v.Any == nil {
			panic("expr: visitor has no Any hook")
		}
		return v.Any()
	default:
		panic("expr: unknown node kind in Walk")
	}
}
