// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the title generation, the research lookup, and
// the description generation into one run.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/product-autogpt/internal/generate"
	"github.com/pdiddy/product-autogpt/internal/logger"
	"github.com/pdiddy/product-autogpt/internal/lookup"
	"github.com/pdiddy/product-autogpt/internal/memory"
	"github.com/pdiddy/product-autogpt/internal/prompt"
	"github.com/pdiddy/product-autogpt/pkg/types"
)

// Factory holds the collaborators shared across runs and builds a fresh
// Orchestrator, with fresh memories, for each request.
type Factory struct {
	Templates     prompt.Set
	Generator     generate.Backend
	Lookup        lookup.Backend
	Temperature   float64
	LLMTimeout    time.Duration
	LookupTimeout time.Duration
	Log           *zap.Logger
}

// New returns an Orchestrator that owns new, empty memories.
func (f *Factory) New() *Orchestrator {
	runID := uuid.NewString()
	log := logger.OrNop(f.Log).With(zap.String("run_id", runID))

	titleMem := memory.New(prompt.KeyTopic)
	descMem := memory.New(prompt.KeyTitle)

	return &Orchestrator{
		runID:    runID,
		titleMem: titleMem,
		descMem:  descMem,
		title: generate.NewStep(generate.StepConfig{
			Name:        "title",
			InputKey:    prompt.KeyTopic,
			OutputKey:   prompt.KeyTitle,
			Temperature: f.Temperature,
			Timeout:     f.LLMTimeout,
		}, f.Templates.Title, titleMem, f.Generator, log),
		research: lookup.NewStep(f.Lookup, f.LookupTimeout, log),
		description: generate.NewStep(generate.StepConfig{
			Name:        "description",
			InputKey:    prompt.KeyTitle,
			OutputKey:   prompt.KeyDescription,
			Temperature: f.Temperature,
			Timeout:     f.LLMTimeout,
		}, f.Templates.Description, descMem, f.Generator, log),
		log: log,
	}
}

// Run builds a new Orchestrator and runs it once.
func (f *Factory) Run(ctx context.Context, topic string) (types.PipelineResult, error) {
	return f.New().Run(ctx, topic)
}

// Orchestrator runs the three steps in order. It is meant for one request;
// its memories are not shared with any other Orchestrator.
type Orchestrator struct {
	runID       string
	title       *generate.Step
	research    *lookup.Step
	description *generate.Step
	titleMem    *memory.Buffer
	descMem     *memory.Buffer
	log         *zap.Logger
}

// RunID identifies this orchestrator in logs and results.
func (o *Orchestrator) RunID() string { return o.runID }

// TitleMemory returns the title step's transcript.
func (o *Orchestrator) TitleMemory() *memory.Buffer { return o.titleMem }

// DescriptionMemory returns the description step's transcript.
func (o *Orchestrator) DescriptionMemory() *memory.Buffer { return o.descMem }

// Run generates a title for topic, looks up research on topic, and generates
// a description from both. Any step failure aborts the run and is returned
// as-is; no partial result is produced. The memories keep whatever turns
// were recorded before the failure.
func (o *Orchestrator) Run(ctx context.Context, topic string) (types.PipelineResult, error) {
	start := time.Now()
	o.log.Info("pipeline started", zap.String("topic", topic))

	title, err := o.title.Run(ctx, map[string]string{prompt.KeyTopic: topic})
	if err != nil {
		return types.PipelineResult{}, o.fail("title", err)
	}
	o.log.Info("title generated", zap.String("title", title))

	research, err := o.research.Run(ctx, topic)
	if err != nil {
		return types.PipelineResult{}, o.fail("research", err)
	}
	o.log.Info("research fetched", zap.Int("chars", len(research)))

	description, err := o.description.Run(ctx, map[string]string{
		prompt.KeyTitle:    title,
		prompt.KeyResearch: research,
	})
	if err != nil {
		return types.PipelineResult{}, o.fail("description", err)
	}

	o.log.Info("pipeline finished", zap.Duration("duration", time.Since(start)))

	return types.PipelineResult{
		RunID:              o.runID,
		Topic:              topic,
		Title:              title,
		Description:        description,
		Research:           research,
		TitleHistory:       o.titleMem.Render(),
		DescriptionHistory: o.descMem.Render(),
		ResearchHistory:    research,
	}, nil
}

func (o *Orchestrator) fail(stage string, err error) error {
	o.log.Error("pipeline failed", zap.String("stage", stage), zap.Error(err))
	return err
}
