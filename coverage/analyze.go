package coverage

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/crillab/varsat/block"
	"github.com/crillab/varsat/model"
	"github.com/crillab/varsat/sat"
)

// Strategy picks which of the two block-coverage search strategies
// Analyze runs.
type Strategy int

const (
	Simple Strategy = iota
	Minimize
)

// Solution is one covering configuration: the model value of every
// named variable of F0 except the synthetic block-presence variables.
type Solution map[string]bool

// Result collects the outcome of a coverage run over one file.
type Result struct {
	Solutions []Solution
	Dead      []string
	Undead    []string
}

// ErrResourceExhausted is raised when the underlying solver runs out
// of memory mid-enumeration. Analyze recovers the panic gini's own
// allocator raises in that situation and turns it into this error
// rather than letting a single oversized file crash a batch run. The
// Result is then nil: solutions found before the panic are not
// returned.
var ErrResourceExhausted = errors.New("coverage: resource exhausted during solve")

// Analyze runs strategy over tree/m and reports the outcome, logging
// with file/strategy context the way OLM's controllers attach
// request-scoped fields to every log line. A malformed F0 (a
// SolverError, e.g. sat.ErrSolverInconsistent) or a resource error is
// logged and returned rather than panicking the caller.
func Analyze(tree block.Tree, m *model.Model, strategy Strategy) (result *Result, err error) {
	entry := log.WithFields(log.Fields{
		"file":     tree.Filename(),
		"strategy": strategyName(strategy),
	})

	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Error("coverage: solver panicked, treating as resource exhaustion")
			result, err = nil, ErrResourceExhausted
		}
	}()

	entry.Debug("coverage: starting analysis")

	var res *Result
	switch strategy {
	case Minimize:
		res, err = minimizeStrategy(tree, m)
	default:
		res, err = simpleStrategy(tree, m)
	}
	if err != nil {
		if errors.Is(err, sat.ErrInterrupted) {
			entry.WithError(err).Warn("coverage: solve interrupted")
		} else {
			entry.WithError(err).Error("coverage: analysis failed")
		}
		return nil, err
	}

	entry.WithFields(log.Fields{
		"solutions": len(res.Solutions),
		"dead":      len(res.Dead),
		"undead":    len(res.Undead),
	}).Info("coverage: analysis complete")
	return res, nil
}

func strategyName(s Strategy) string {
	switch s {
	case Minimize:
		return "minimize"
	case Simple:
		return "simple"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}
