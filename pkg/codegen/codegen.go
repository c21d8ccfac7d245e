// Package codegen defines the abstract code generation backend and the
// service that drives it. Implementations (Gemini, Anthropic, OpenAI) turn a
// prompt into text behind the Generator interface, so providers can be
// swapped without changing the rest of the system.
package codegen

import (
	"context"
	"errors"
	"fmt"
)

// Generator is the abstract text generation backend.
type Generator interface {
	// Name identifies the provider ("gemini", "anthropic", "openai").
	Name() string
	// Model is the provider-specific model the generator calls.
	Model() string
	// Generate sends prompt and returns the provider's text reply.
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrNotConfigured means no provider is available, usually because no
	// API key was supplied.
	ErrNotConfigured = errors.New("code generation is not configured: set an API key for the selected provider")

	// ErrEmptyRequest means a backend request was blank.
	ErrEmptyRequest = errors.New("backend request is empty")

	// ErrGeneration is matched by every provider failure.
	ErrGeneration = errors.New("unable to produce output")
)

// GenerationError wraps a provider failure. errors.Is(err, ErrGeneration)
// holds for every GenerationError.
type GenerationError struct {
	Op       string // "frontend" or "backend"
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation via %s: %v: %v", e.Op, e.Provider, ErrGeneration, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }
