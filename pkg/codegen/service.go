package codegen

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/chazu/uiforge/pkg/debug"
	"github.com/chazu/uiforge/pkg/history"
	"github.com/chazu/uiforge/pkg/prompt"
	"github.com/chazu/uiforge/pkg/tree"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 2 * time.Minute

// Recorder stores finished generation runs. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (int64, error)
}

// Service turns designs and requests into generated code. Identical requests
// that overlap in time share one provider call. A Service is safe for
// concurrent use.
type Service struct {
	gen     Generator
	rec     Recorder
	timeout time.Duration
	now     func() time.Time
	flight  singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder logs every run to rec.
func WithRecorder(rec Recorder) Option {
	return func(s *Service) { s.rec = rec }
}

// WithTimeout bounds each provider call. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService creates a Service over gen. A nil gen yields a Service whose
// calls fail with ErrNotConfigured.
func NewService(gen Generator, opts ...Option) *Service {
	s := &Service{gen: gen, timeout: DefaultTimeout, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether a provider is attached.
func (s *Service) Configured() bool {
	return s.gen != nil
}

// Provider returns the attached provider's name, or "" when unconfigured.
func (s *Service) Provider() string {
	if s.gen == nil {
		return ""
	}
	return s.gen.Name()
}

// Frontend generates a standalone HTML document for the forest. An empty
// forest asks for a default landing page. A markdown fence around the reply
// is removed.
func (s *Service) Frontend(ctx context.Context, forest []tree.SnapshotNode) (string, error) {
	desc := prompt.Describe(forest)
	out, err := s.run(ctx, history.KindFrontend, desc, prompt.Frontend(desc))
	if err != nil {
		return "", err
	}
	return prompt.StripCodeFence(out), nil
}

// Backend generates an Express server and Prisma schema for a free-text
// request. The reply is returned as-is.
func (s *Service) Backend(ctx context.Context, request string) (string, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return "", ErrEmptyRequest
	}
	return s.run(ctx, history.KindBackend, request, prompt.Backend(request))
}

func (s *Service) run(ctx context.Context, kind history.Kind, subject, fullPrompt string) (string, error) {
	if s.gen == nil {
		return "", ErrNotConfigured
	}
	defer debug.LogEnterExit("codegen." + string(kind))()

	v, err, shared := s.flight.Do(string(kind)+"\x00"+fullPrompt, func() (any, error) {
		return s.call(ctx, kind, subject, fullPrompt)
	})
	if shared {
		debug.Log("codegen: %s request shared an in-flight call", kind)
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Service) call(ctx context.Context, kind history.Kind, subject, fullPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	out, err := s.gen.Generate(ctx, fullPrompt)
	if err == nil && strings.TrimSpace(out) == "" {
		err = errors.New("provider returned an empty reply")
	}
	elapsed := s.now().Sub(start)

	entry := history.Entry{
		Kind:      kind,
		Provider:  s.gen.Name(),
		Model:     s.gen.Model(),
		Prompt:    subject,
		Duration:  elapsed,
		CreatedAt: start,
	}
	if err != nil {
		log.Printf("Error generating %s code via %s: %v", kind, s.gen.Name(), err)
		err = &GenerationError{Op: string(kind), Provider: s.gen.Name(), Err: err}
		entry.Error = err.Error()
	} else {
		entry.Output = out
	}
	s.record(entry)

	if err != nil {
		return "", err
	}
	debug.LogTiming("codegen "+string(kind)+" via "+s.gen.Name(), elapsed)
	return out, nil
}

// record stores e without letting a history failure fail the generation.
func (s *Service) record(e history.Entry) {
	if s.rec == nil {
		return
	}
	if _, err := s.rec.Record(context.Background(), e); err != nil {
		log.Printf("Warning: could not record generation history: %v", err)
	}
}
