package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chazu/uiforge/pkg/tree"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var errStopped = errors.New("evaluation stopped")

type evalResult struct {
	store  *tree.Store
	errors []EvalError
	err    error
}

// evaluation is one in-flight Evaluate call. The interpreter checks stop
// before every function call, so a script unwinds soon after the engine
// gives up on it. A loop that calls no function at all is not interrupted.
type evaluation struct {
	gen  uint64
	done chan evalResult
	stop atomic.Bool
}

func newEvaluation(gen uint64) *evaluation {
	return &evaluation{gen: gen, done: make(chan evalResult, 1)}
}

// checkStop is installed as a zygomys prehook. The panic escapes Run and is
// recovered by start.
func (ev *evaluation) checkStop(*zygo.Zlisp, string, []zygo.Sexp) {
	if ev.stop.Load() {
		panic(errStopped)
	}
}

// start runs the script on its own goroutine. Exactly one result is sent on
// ev.done, and the goroutine exits once it is sent.
func (e *Engine) start(ev *evaluation, source string) {
	go func() {
		defer func() {
			r := recover()
			switch {
			case r == nil:
			case r == errStopped:
				ev.done <- evalResult{err: errStopped}
			default:
				ev.done <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		s, evalErrs, err := e.evaluate(source, ev)
		ev.done <- evalResult{store: s, errors: evalErrs, err: err}
	}()
}

// wait blocks for the result of ev. It fails when the engine's timeout
// passes first, stopping the script, or when a newer Evaluate call started
// in the meantime.
func (e *Engine) wait(ev *evaluation) (*tree.Store, []EvalError, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case res := <-ev.done:
		e.mu.Lock()
		current := e.generation
		e.mu.Unlock()

		if ev.gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.store, res.errors, res.err

	case <-timer.C:
		ev.stop.Store(true)
		return nil, nil, fmt.Errorf("evaluation timed out after %s", e.timeout)
	}
}
