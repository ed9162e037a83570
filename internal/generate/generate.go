// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate binds a prompt template, a conversation memory, and a
// text-generation backend into one step that produces one piece of text.
package generate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/product-autogpt/internal/logger"
	"github.com/pdiddy/product-autogpt/internal/memory"
	"github.com/pdiddy/product-autogpt/internal/prompt"
)

// Backend abstracts the text-generation API so tests can supply a mock.
// Implementations make exactly one call per Complete and do not retry.
type Backend interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, prompt string, temperature float64) (string, error)

// Complete calls f.
func (f BackendFunc) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	return f(ctx, prompt, temperature)
}

// GenerationError reports a failed or timed-out backend call.
type GenerationError struct {
	Step string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation step %s: %v", e.Step, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// StepConfig names a step and the memory keys it records under.
type StepConfig struct {
	// Name identifies the step in logs and errors (e.g. "title").
	Name string

	// InputKey selects which input value is recorded as the prompt turn.
	InputKey string

	// OutputKey labels the response turn.
	OutputKey string

	// Temperature is passed to the backend on every call.
	Temperature float64

	// Timeout bounds the backend call. Zero means no step-level deadline.
	Timeout time.Duration
}

// Step is one bound (template, memory, backend) unit. The template and memory
// are fixed at construction; the step owns its memory for one pipeline run.
type Step struct {
	cfg      StepConfig
	template *prompt.Template
	memory   *memory.Buffer
	backend  Backend
	log      *zap.Logger
}

// NewStep wires a step. A nil log discards output.
func NewStep(cfg StepConfig, tmpl *prompt.Template, mem *memory.Buffer, backend Backend, log *zap.Logger) *Step {
	return &Step{
		cfg:      cfg,
		template: tmpl,
		memory:   mem,
		backend:  backend,
		log:      logger.OrNop(log).With(zap.String("step", cfg.Name)),
	}
}

// Name returns the configured step name.
func (s *Step) Name() string { return s.cfg.Name }

// Memory returns the step's transcript.
func (s *Step) Memory() *memory.Buffer { return s.memory }

// Run renders the template with inputs, records the input turn, calls the
// backend, records the response turn, and returns the response unchanged.
//
// A render failure returns *prompt.MissingPlaceholderError and leaves memory
// untouched. A backend failure returns *GenerationError; the input turn is
// kept, since the transcript records attempts.
func (s *Step) Run(ctx context.Context, inputs map[string]string) (string, error) {
	rendered, err := s.template.Render(inputs)
	if err != nil {
		return "", err
	}

	s.memory.Append(s.cfg.InputKey, inputs[s.cfg.InputKey])
	s.log.Debug("prompt rendered", zap.String("prompt", rendered))

	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.backend.Complete(callCtx, rendered, s.cfg.Temperature)
	if err != nil {
		return "", &GenerationError{Step: s.cfg.Name, Err: err}
	}
	s.log.Debug("completion received",
		zap.Duration("duration", time.Since(start)),
		zap.Int("chars", len(out)))

	s.memory.Append(s.cfg.OutputKey, out)
	return out, nil
}
