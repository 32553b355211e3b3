// Package cnf implements the Tseitin-style CNF builder (C3): it turns
// expr.Expr trees into equisatisfiable clause sets while tracking
// named variables, symbol types, and metadata in a Registry.
package cnf

import (
	"github.com/dlclark/regexp2"

	"github.com/crillab/varsat/kconfig"
)

// ConstantPolicy chooses how expr.Const leaves are encoded: Bound
// pins them with a unit clause, Free leaves them unconstrained so a
// later consumer can satisfy or falsify the placeholder.
type ConstantPolicy int

const (
	Bound ConstantPolicy = iota
	Free
)

// Registry is the CNF variable/clause table described in §3: every
// distinct symbol occurring in pushed clauses has a positive integer
// id in CNFVars (except names matched by the whitelist, which get an
// id but no CNFVars entry), VarCount is the max id allocated, and Clauses is a
// multiset of clauses (each a slice of signed literals, no trailing
// 0 — Go slices carry their own length).
type Registry struct {
	VarCount    int
	Clauses     [][]int
	CNFVars     map[string]int
	BoolVars    map[int]string
	SymbolTypes map[string]kconfig.SymbolType
	Associated  map[string]string // CONFIG_NAME -> base symbol name
	Meta        map[string][]string

	policy    ConstantPolicy
	whitelist *regexp2.Regexp
	freeVars  map[string]int
	callIDs   map[string]int
}

// NewRegistry creates an empty registry. whitelist may be nil, in
// which case no variable name is treated as a free existential.
func NewRegistry(policy ConstantPolicy, whitelist *regexp2.Regexp) *Registry {
	return &Registry{
		CNFVars:     make(map[string]int),
		BoolVars:    make(map[int]string),
		SymbolTypes: make(map[string]kconfig.SymbolType),
		Associated:  make(map[string]string),
		Meta:        make(map[string][]string),
		policy:      policy,
		whitelist:   whitelist,
		freeVars:    make(map[string]int),
		callIDs:     make(map[string]int),
	}
}

// ClauseCount returns the number of clauses pushed so far.
func (r *Registry) ClauseCount() int { return len(r.Clauses) }

func (r *Registry) newVar() int {
	r.VarCount++
	return r.VarCount
}

func (r *Registry) addClause(lits ...int) {
	clause := make([]int, len(lits))
	copy(clause, lits)
	r.Clauses = append(r.Clauses, clause)
}

// AssertTop appends the unit clause asserting that top's variable
// holds, per §4.3's "the builder emits unit clause (t_F)".
func (r *Registry) AssertTop(top int) {
	r.addClause(top)
}

func (r *Registry) whitelisted(name string) bool {
	if r.whitelist == nil {
		return false
	}
	ok, err := r.whitelist.MatchString(name)
	return err == nil && ok
}

// varForName returns the id for a named variable, allocating a fresh
// one on first use. Names matching the whitelist are allocated an id
// but never registered in CNFVars/BoolVars, so they act as free
// existentials that downstream readers do not see as tracked symbols.
func (r *Registry) varForName(name string) int {
	if id, ok := r.CNFVars[name]; ok {
		return id
	}
	if id, ok := r.freeVars[name]; ok {
		return id
	}
	if r.whitelisted(name) {
		id := r.newVar()
		r.freeVars[name] = id
		return id
	}
	id := r.newVar()
	r.CNFVars[name] = id
	r.BoolVars[id] = name
	return id
}

// AssociateSymbol records that name is a variant of base (e.g. the
// post-definition CONFIG_C. form associated with CONFIG_C), for
// consumers that need to relate macro-defined symbol variants.
func (r *Registry) AssociateSymbol(name, base string) {
	r.Associated[name] = base
}

// SetSymbolType records the Kconfig type of a named variable, used
// when writing the "c sym" lines of a DIMACS file.
func (r *Registry) SetSymbolType(name string, t kconfig.SymbolType) {
	r.SymbolTypes[name] = t
}

// AddMeta appends a value under a metadata key (ALWAYS_ON,
// ALWAYS_OFF, CONFIGURATION_SPACE_REGEX, ...).
func (r *Registry) AddMeta(key, value string) {
	r.Meta[key] = append(r.Meta[key], value)
}
