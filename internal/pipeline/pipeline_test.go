// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/product-autogpt/internal/generate"
	"github.com/pdiddy/product-autogpt/internal/lookup"
	"github.com/pdiddy/product-autogpt/internal/prompt"
)

const (
	topic    = "eco-friendly water bottle"
	research = "Water bottles are containers for liquids..."
)

// recorder logs every collaborator call in order so tests can check the
// structure of a run independently of the returned text.
type recorder struct {
	events []string
}

type scriptedLLM struct {
	rec       *recorder
	responses []string
	errs      []error
	prompts   []string
	temps     []float64
}

func (s *scriptedLLM) Complete(_ context.Context, p string, temperature float64) (string, error) {
	i := len(s.prompts)
	s.prompts = append(s.prompts, p)
	s.temps = append(s.temps, temperature)
	s.rec.events = append(s.rec.events, "complete")
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return fmt.Sprintf("response-%d", i), nil
}

type scriptedLookup struct {
	rec     *recorder
	result  string
	err     error
	queries []string
}

func (s *scriptedLookup) Name() string { return "scripted" }

func (s *scriptedLookup) Lookup(_ context.Context, q string) (string, error) {
	s.queries = append(s.queries, q)
	s.rec.events = append(s.rec.events, "lookup")
	return s.result, s.err
}

func newFactory(llm generate.Backend, lk lookup.Backend) *Factory {
	return &Factory{
		Templates:   prompt.Defaults(),
		Generator:   llm,
		Lookup:      lk,
		Temperature: 0.9,
	}
}

func TestRun_WaterBottleScenario(t *testing.T) {
	rec := &recorder{}
	llm := &scriptedLLM{rec: rec, responses: []string{"AquaPure", "AquaPure keeps water cold."}}
	lk := &scriptedLookup{rec: rec, result: research}

	orch := newFactory(llm, lk).New()
	res, err := orch.Run(context.Background(), topic)
	require.NoError(t, err)

	assert.Equal(t, "AquaPure", res.Title)
	assert.Equal(t, "AquaPure keeps water cold.", res.Description)
	assert.Equal(t, research, res.Research)
	assert.Equal(t, research, res.ResearchHistory)
	assert.Equal(t, topic, res.Topic)
	assert.Equal(t, orch.RunID(), res.RunID)
	assert.NotEmpty(t, res.RunID)

	assert.Equal(t, []string{"complete", "lookup", "complete"}, rec.events)
	assert.Equal(t, []string{topic}, lk.queries)

	require.Len(t, llm.prompts, 2)
	assert.Equal(t, "Write me a fun, catchy, concise product title about "+topic, llm.prompts[0])
	assert.Contains(t, llm.prompts[1], "Write me a product description about AquaPure.")
	assert.Contains(t, llm.prompts[1], research)
	assert.Equal(t, []float64{0.9, 0.9}, llm.temps)

	assert.Equal(t, "topic: eco-friendly water bottle\ntitle: AquaPure", res.TitleHistory)
	assert.Equal(t, "title: AquaPure\ndescription: AquaPure keeps water cold.", res.DescriptionHistory)
}

func TestRun_DescriptionFailure(t *testing.T) {
	rec := &recorder{}
	cause := errors.New("model overloaded")
	llm := &scriptedLLM{rec: rec, responses: []string{"AquaPure"}, errs: []error{nil, cause}}
	lk := &scriptedLookup{rec: rec, result: research}

	orch := newFactory(llm, lk).New()
	res, err := orch.Run(context.Background(), topic)
	require.Error(t, err)

	var ge *generate.GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "description", ge.Step)
	assert.True(t, errors.Is(err, cause))
	assert.Empty(t, res.Title, "no partial result")

	assert.Equal(t, "topic: eco-friendly water bottle\ntitle: AquaPure", orch.TitleMemory().Render())
	assert.Equal(t, 1, orch.DescriptionMemory().Len())
	assert.Equal(t, "title: AquaPure", orch.DescriptionMemory().Render())
}

func TestRun_TitleFailureStopsPipeline(t *testing.T) {
	rec := &recorder{}
	llm := &scriptedLLM{rec: rec, errs: []error{errors.New("401")}}
	lk := &scriptedLookup{rec: rec, result: research}

	orch := newFactory(llm, lk).New()
	_, err := orch.Run(context.Background(), topic)

	var ge *generate.GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "title", ge.Step)
	assert.Equal(t, []string{"complete"}, rec.events)
	assert.Equal(t, 1, orch.TitleMemory().Len())
	assert.Equal(t, 0, orch.DescriptionMemory().Len())
}

func TestRun_LookupFailure(t *testing.T) {
	rec := &recorder{}
	llm := &scriptedLLM{rec: rec, responses: []string{"AquaPure"}}
	lk := &scriptedLookup{rec: rec, err: errors.New("wikipedia down")}

	orch := newFactory(llm, lk).New()
	_, err := orch.Run(context.Background(), topic)

	var le *lookup.LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, topic, le.Query)
	assert.Equal(t, []string{"complete", "lookup"}, rec.events)
	assert.Equal(t, 2, orch.TitleMemory().Len())
	assert.Equal(t, 0, orch.DescriptionMemory().Len())
}

func TestRun_MissingPlaceholderFromTemplateOverride(t *testing.T) {
	rec := &recorder{}
	llm := &scriptedLLM{rec: rec}
	lk := &scriptedLookup{rec: rec, result: research}

	f := newFactory(llm, lk)
	// A description template that asks for a value the pipeline never supplies.
	f.Templates.Description = prompt.MustNew("description", []string{"title", "audience"}, "{title} for {audience}")

	_, err := f.Run(context.Background(), topic)
	var mpe *prompt.MissingPlaceholderError
	require.True(t, errors.As(err, &mpe))
	assert.Equal(t, "audience", mpe.Name)
	assert.Equal(t, []string{"complete", "lookup"}, rec.events)
}

func TestRun_EmptyTopic(t *testing.T) {
	rec := &recorder{}
	llm := &scriptedLLM{rec: rec, responses: []string{"Mystery Box", "It is a box."}}
	lk := &scriptedLookup{rec: rec, result: lookup.WikipediaNotFound}

	res, err := newFactory(llm, lk).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "Mystery Box", res.Title)
	assert.Equal(t, "Write me a fun, catchy, concise product title about ", llm.prompts[0])
	assert.Equal(t, []string{""}, lk.queries)
	assert.Equal(t, "topic: \ntitle: Mystery Box", res.TitleHistory)
}

func TestRun_StructureIndependentOfContent(t *testing.T) {
	outputs := [][]string{
		{"A", "B"},
		{"", ""},
		{strings.Repeat("long ", 200), "{title} {research}"},
	}

	for i, out := range outputs {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			rec := &recorder{}
			llm := &scriptedLLM{rec: rec, responses: out}
			lk := &scriptedLookup{rec: rec, result: out[0]}

			res, err := newFactory(llm, lk).Run(context.Background(), topic)
			require.NoError(t, err)
			assert.Equal(t, []string{"complete", "lookup", "complete"}, rec.events)
			assert.Equal(t, out[1], res.Description)
		})
	}
}

func TestFactory_FreshMemoriesPerOrchestrator(t *testing.T) {
	rec := &recorder{}
	llm := &scriptedLLM{rec: rec}
	lk := &scriptedLookup{rec: rec, result: research}
	f := newFactory(llm, lk)

	first := f.New()
	_, err := first.Run(context.Background(), "first topic")
	require.NoError(t, err)

	second := f.New()
	res, err := second.Run(context.Background(), "second topic")
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID(), second.RunID())
	assert.NotContains(t, res.TitleHistory, "first topic")
	assert.Equal(t, 2, first.TitleMemory().Len())
	assert.Equal(t, 2, second.TitleMemory().Len())
}
