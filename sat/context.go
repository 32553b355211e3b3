// Package sat wraps a Registry's clauses in an incremental SAT solver
// (C4): pushing assumptions, checking satisfiability, reading back a
// model, and extracting the unsat core of a failed assumption vector
// for MUS computation.
package sat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/crillab/varsat/cnf"
)

// ErrInterrupted is returned by CheckSat/CheckSatCtx when a solve was
// canceled before reaching a verdict.
var ErrInterrupted = errors.New("sat: solve interrupted")

// ErrSolverInconsistent is returned by Deref when called before any
// CheckSat/CheckSatCtx call on this context, or after the most recent
// one returned unsat — the model gini holds in either case is not one
// this context's own clause set is known to satisfy.
var ErrSolverInconsistent = errors.New("sat: context has no satisfiable model to read back")

// only one Context may hold clauses loaded into the process solver at
// a time; switching contexts resets and reloads (§4.4, §5).
var (
	mu      sync.Mutex
	current *Context
)

// Context is one incremental SAT problem built from a cnf.Registry.
// It is not safe for concurrent use by multiple goroutines; the
// package-level mutex only serializes the shared "current context"
// bookkeeping, not access to a single Context's own methods.
type Context struct {
	reg    *cnf.Registry
	g      *gini.Gini
	loaded bool

	assumptions []z.Lit
	lastFailed  []int
	satisfiable *bool
}

// NewContext creates a context over reg's clauses. Clauses are not
// pushed into the solver until the first CheckSat/CheckSatCtx call.
func NewContext(reg *cnf.Registry) *Context {
	return &Context{reg: reg}
}

// PushAssumptionVar queues a signed literal, in DIMACS convention (a
// negative id assumes the variable false), for the next CheckSat.
func (c *Context) PushAssumptionVar(id int) {
	c.assumptions = append(c.assumptions, z.Dimacs2Lit(id))
}

// PushAssumption queues a named variable at the given polarity for the
// next CheckSat call.
func (c *Context) PushAssumption(name string, val bool) error {
	id, ok := c.reg.CNFVars[name]
	if !ok {
		return fmt.Errorf("sat: unknown variable %q", name)
	}
	if !val {
		id = -id
	}
	c.PushAssumptionVar(id)
	return nil
}

// ensureLoaded implements the "current context" swap of §4.4: if this
// context is not the one currently holding clauses in the process
// solver, a fresh gini.Gini is built and every clause re-pushed.
func (c *Context) ensureLoaded() {
	if current == c && c.loaded {
		return
	}
	g := gini.New()
	for _, clause := range c.reg.Clauses {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull)
	}
	c.g = g
	c.loaded = true
	current = c
}

// CheckSat loads this context if needed, consumes the queued
// assumption vector, and solves. The assumption vector is cleared
// whether or not the call succeeds.
func (c *Context) CheckSat() (bool, error) {
	mu.Lock()
	defer mu.Unlock()
	return c.checkSatLocked()
}

func (c *Context) checkSatLocked() (bool, error) {
	c.ensureLoaded()
	assumed := c.assumptions
	c.assumptions = nil
	if len(assumed) > 0 {
		c.g.Assume(assumed...)
	}

	switch c.g.Solve() {
	case 1:
		c.lastFailed = nil
		c.satisfiable = boolPtr(true)
		return true, nil
	case -1:
		c.lastFailed = readFailed(c.g, assumed)
		c.satisfiable = boolPtr(false)
		return false, nil
	default:
		c.satisfiable = nil
		return false, ErrInterrupted
	}
}

func boolPtr(v bool) *bool { return &v }

// CheckSatCtx behaves like CheckSat but returns ErrInterrupted early
// if ctx is canceled before the underlying solve finishes, giving
// callers a best-effort interrupt hook (§5).
func (c *Context) CheckSatCtx(ctx context.Context) (bool, error) {
	mu.Lock()
	defer mu.Unlock()

	c.ensureLoaded()
	assumed := c.assumptions
	c.assumptions = nil
	if len(assumed) > 0 {
		c.g.Assume(assumed...)
	}

	handle := c.g.GoSolve()
	type outcome struct {
		v int
	}
	done := make(chan outcome, 1)
	go func() {
		v := handle.Try(24 * time.Hour)
		done <- outcome{v}
	}()

	select {
	case o := <-done:
		switch o.v {
		case 1:
			c.lastFailed = nil
			c.satisfiable = boolPtr(true)
			return true, nil
		case -1:
			c.lastFailed = readFailed(c.g, assumed)
			c.satisfiable = boolPtr(false)
			return false, nil
		default:
			c.satisfiable = nil
			return false, ErrInterrupted
		}
	case <-ctx.Done():
		handle.Stop()
		<-done
		c.satisfiable = nil
		return false, ErrInterrupted
	}
}

// Interrupt does nothing: it does not stop a running solve. A solve
// started via CheckSatCtx is stopped only by canceling the context
// passed to that call; a CheckSat solve cannot be stopped.
func (c *Context) Interrupt() {}

// Deref reads the model value of a named variable after a satisfiable
// CheckSat call. It returns ErrSolverInconsistent if no CheckSat call
// has been made yet, or the most recent one returned unsat.
func (c *Context) Deref(name string) (bool, error) {
	if c.satisfiable == nil || !*c.satisfiable {
		return false, ErrSolverInconsistent
	}
	id, ok := c.reg.CNFVars[name]
	if !ok {
		return false, fmt.Errorf("sat: unknown variable %q", name)
	}
	return c.DerefVar(id), nil
}

// DerefVar reads the model value of a variable by its Registry id.
func (c *Context) DerefVar(id int) bool {
	return c.g.Value(z.Dimacs2Lit(id))
}

// FailedAssumptions returns the unsat core over the assumption vector
// pushed for the most recent CheckSat call, as signed DIMACS-style
// ints, when that call was unsatisfiable; after a satisfiable call it
// returns nil. It is used to seed MUS extraction (§4.4,
// GLOSSARY "MUS").
func (c *Context) FailedAssumptions() []int {
	return c.lastFailed
}

func readFailed(g *gini.Gini, assumed []z.Lit) []int {
	if len(assumed) == 0 {
		return nil
	}
	failed := g.Why(nil)
	ids := make([]int, len(failed))
	for i, l := range failed {
		ids[i] = l.Dimacs()
	}
	return ids
}
