// Package engine evaluates layout scripts: small Lisp programs that describe
// a component forest. It wraps zygomys in a sandboxed environment and builds
// a tree.Store from user source code.
//
//	(mount
//	  (header :text "Welcome" :font-size (responsive 48 36 28))
//	  (flex-container :flex-direction (responsive :row :column :column)
//	    (card (text :text "Fast"))
//	    (card (text :text "Simple"))))
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/uiforge/pkg/tree"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning is a non-fatal finding about the forest a script produced.
type EvalWarning struct {
	Message string      `json:"message"`
	NodeID  tree.NodeID `json:"nodeId,omitempty"`
}

// Engine wraps the zygomys interpreter for layout script evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	inflight   *evaluation

	timeout   time.Duration
	storeOpts []tree.Option
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets how long Evaluate waits before stopping a script.
// Non-positive durations keep EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithStoreOptions sets options applied to every Store the engine builds.
func WithStoreOptions(opts ...tree.Option) Option {
	return func(e *Engine) {
		e.storeOpts = append(e.storeOpts, opts...)
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: EvalTimeout}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate runs a layout script and returns the forest it mounted, with
// nothing selected. Starting a new evaluation stops the previous one.
//
// Return semantics:
//   - On success: returns store + nil errors + nil error
//   - On parse/eval failure: returns nil store + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*tree.Store, []EvalError, error) {
	e.mu.Lock()
	if e.inflight != nil {
		e.inflight.stop.Store(true)
	}
	e.generation++
	ev := newEvaluation(e.generation)
	e.inflight = ev
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		if e.inflight == ev {
			e.inflight = nil
		}
		e.mu.Unlock()
	}()

	e.start(ev, source)
	return e.wait(ev)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string, ev *evaluation) (*tree.Store, []EvalError, error) {
	s := tree.New(e.storeOpts...)

	// Empty source is a valid program that produces an empty forest.
	if strings.TrimSpace(source) == "" {
		return s, nil, nil
	}

	// Sandbox mode prevents scripts from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	env.AddPreHook(ev.checkStop)
	registerBuiltins(env, s)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	s.ClearSelection()
	return s, nil, nil
}

// Warnings reports property keys a script set that the component's kind
// never reads. Such keys are kept but have no effect on rendering.
func Warnings(s *tree.Store) []EvalWarning {
	var out []EvalWarning
	for _, v := range tree.Validate(s) {
		if v.Severity != tree.SeverityWarning {
			continue
		}
		out = append(out, EvalWarning{Message: v.Message, NodeID: v.NodeID})
	}
	return out
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		m := re.FindStringSubmatchIndex(msg)
		if m == nil {
			continue
		}
		line, _ := strconv.Atoi(msg[m[2]:m[3]])
		detail := strings.TrimSpace(msg[m[4]:m[5]])
		// Keep whatever the interpreter said before the location.
		if prefix := strings.TrimSpace(msg[:m[0]]); prefix != "" {
			detail = strings.TrimSuffix(prefix, ":") + ": " + detail
		}
		return []EvalError{{Line: line, Message: detail}}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
