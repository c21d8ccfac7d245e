package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/chazu/uiforge/pkg/codegen"
	"github.com/chazu/uiforge/pkg/component"
	"github.com/chazu/uiforge/pkg/config"
	"github.com/chazu/uiforge/pkg/debug"
	"github.com/chazu/uiforge/pkg/engine"
	"github.com/chazu/uiforge/pkg/history"
	"github.com/chazu/uiforge/pkg/tree"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
// Every edit goes through the single Store under mu, so concurrent binding
// calls are applied one at a time.
type App struct {
	ctx context.Context
	cfg config.Config

	mu    sync.Mutex
	store *tree.Store

	engine  *engine.Engine
	codegen *codegen.Service
	history *history.Store
	closers []io.Closer
}

// ViewState is the JSON-serializable editor state sent to the frontend.
type ViewState struct {
	Forest       []tree.SnapshotNode `json:"forest"`
	Selected     tree.NodeID         `json:"selected,omitempty"`
	SelectedNode *tree.Node          `json:"selectedNode,omitempty"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ScriptResult is returned by LoadScript. On errors the editor state is left
// untouched and State reflects it.
type ScriptResult struct {
	State    ViewState            `json:"state"`
	Errors   []EvalErrorData      `json:"errors"`
	Warnings []engine.EvalWarning `json:"warnings"`
}

// GenerationResult carries generated code or the reason there is none.
type GenerationResult struct {
	Output   string `json:"output"`
	Provider string `json:"provider,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewApp creates an App with an empty design. Code generation stays
// unavailable until startup wires a provider.
func NewApp(cfg config.Config) *App {
	return &App{
		cfg:     cfg,
		store:   tree.New(),
		engine:  engine.NewEngine(),
		codegen: codegen.NewService(nil),
	}
}

// startup is called by Wails on app startup. The context is saved
// so provider calls are cancelled when the window closes.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	var opts []codegen.Option
	opts = append(opts, codegen.WithTimeout(a.cfg.Timeout()))

	if a.cfg.History.Enabled {
		if path := a.cfg.HistoryPath(); path != "" {
			h, err := history.Open(path)
			if err != nil {
				log.Printf("history disabled: %v", err)
			} else {
				a.history = h
				opts = append(opts, codegen.WithRecorder(h))
				log.Printf("generation history at %s", h.Path())
			}
		}
	}

	gen, err := codegen.NewGenerator(ctx, a.cfg)
	switch {
	case errors.Is(err, codegen.ErrNotConfigured):
		log.Printf("code generation unavailable: no API key for %s", a.cfg.Provider)
	case err != nil:
		log.Printf("code generation unavailable: %v", err)
	default:
		if c, ok := gen.(io.Closer); ok {
			a.closers = append(a.closers, c)
		}
		log.Printf("code generation via %s (%s)", gen.Name(), gen.Model())
	}
	a.codegen = codegen.NewService(gen, opts...)
}

// shutdown is called by Wails when the window closes.
func (a *App) shutdown(ctx context.Context) {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Printf("close provider: %v", err)
		}
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			log.Printf("close history: %v", err)
		}
	}
}

func (a *App) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// viewState must be called with a.mu held.
func (a *App) viewState() ViewState {
	st := a.store.State()
	vs := ViewState{Forest: st.Forest, Selected: st.Selected}
	if n, ok := a.store.SelectedNode(); ok {
		vs.SelectedNode = &n
	}
	return vs
}

// State returns the current forest and selection.
func (a *App) State() ViewState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.viewState()
}

// AddComponent inserts a new component of the named kind under parentID
// ("" for the top level) at index. A negative index appends. The new
// component becomes the selection. Dropping onto a leaf or an unknown
// parent changes nothing.
func (a *App) AddComponent(kind, parentID string, index int) (ViewState, error) {
	k, err := component.ParseKind(kind)
	if err != nil {
		return a.State(), err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	parent := tree.NodeID(parentID)
	var id tree.NodeID
	if index < 0 {
		id = a.store.Add(k, parent)
	} else {
		id = a.store.AddAt(k, parent, index)
	}
	if id.IsZero() {
		debug.Log("add %s under %q ignored", k, parentID)
	} else {
		debug.Log("added %s", id)
	}
	return a.viewState(), nil
}

// SelectComponent makes id the selection. Unknown ids are accepted and
// simply resolve to no selected node.
func (a *App) SelectComponent(id string) ViewState {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id == "" {
		a.store.ClearSelection()
	} else {
		a.store.Select(tree.NodeID(id))
	}
	return a.viewState()
}

// UpdateComponent merges patch into the component's properties. Keys not
// in patch keep their values.
func (a *App) UpdateComponent(id string, patch map[string]any) (ViewState, error) {
	props, err := component.PropertiesFromMap(patch)
	if err != nil {
		return a.State(), fmt.Errorf("update %s: %w", id, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.store.Update(tree.NodeID(id), props) {
		debug.Log("update of unknown component %q ignored", id)
	}
	return a.viewState(), nil
}

// DeleteComponent removes the component and everything inside it.
func (a *App) DeleteComponent(id string) ViewState {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.store.Delete(tree.NodeID(id))
	return a.viewState()
}

// MoveComponent relocates dragID to index within parentID ("" for the top
// level). Dropping a component onto itself or into its own subtree, or onto
// a target that cannot hold children, leaves the design unchanged.
func (a *App) MoveComponent(dragID, parentID string, index int) ViewState {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := tree.Target{Parent: tree.NodeID(parentID), Index: index}
	if !a.store.Move(tree.NodeID(dragID), t) {
		debug.Log("move %q to %q[%d] rejected", dragID, parentID, index)
	}
	return a.viewState()
}

// LoadScript evaluates a layout script and, when it succeeds, replaces the
// whole design with the forest it mounted.
func (a *App) LoadScript(source string) ScriptResult {
	result := ScriptResult{
		Errors:   []EvalErrorData{},
		Warnings: []engine.EvalWarning{},
	}

	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("LoadScript fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		result.State = a.State()
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		result.State = a.State()
		return result
	}

	result.Warnings = append(result.Warnings, engine.Warnings(s)...)

	a.mu.Lock()
	a.store = s
	result.State = a.viewState()
	a.mu.Unlock()
	return result
}

// GenerateFrontend produces a standalone HTML page for the current design.
// The design is copied first, so editing may continue while the provider
// works.
func (a *App) GenerateFrontend() GenerationResult {
	a.mu.Lock()
	forest := a.store.Snapshot()
	a.mu.Unlock()

	out, err := a.codegen.Frontend(a.context(), forest)
	return a.generationResult(out, err)
}

// GenerateBackend produces an Express server and Prisma schema for a
// free-text request.
func (a *App) GenerateBackend(request string) GenerationResult {
	out, err := a.codegen.Backend(a.context(), request)
	return a.generationResult(out, err)
}

func (a *App) generationResult(out string, err error) GenerationResult {
	res := GenerationResult{Provider: a.codegen.Provider()}
	if err != nil {
		log.Printf("generation failed: %v", err)
		res.Error = userMessage(err)
		return res
	}
	res.Output = out
	return res
}

// userMessage keeps provider internals out of the UI.
func userMessage(err error) string {
	switch {
	case errors.Is(err, codegen.ErrNotConfigured),
		errors.Is(err, codegen.ErrEmptyRequest):
		return err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "the request timed out, please try again"
	case errors.Is(err, codegen.ErrGeneration):
		return codegen.ErrGeneration.Error()
	default:
		return err.Error()
	}
}

// History lists recent generation runs, newest first.
func (a *App) History(limit int) ([]history.Entry, error) {
	if a.history == nil {
		return []history.Entry{}, nil
	}
	return a.history.Recent(a.context(), limit)
}
