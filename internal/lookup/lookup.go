// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup fetches a short encyclopedia summary for a query. The step
// calls its backend once and returns the text verbatim: no memory, no retry,
// no cache.
package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/product-autogpt/internal/logger"
)

// Backend searches a single knowledge source. Each source (Wikipedia, the
// local article store) implements this interface.
type Backend interface {
	Name() string
	Lookup(ctx context.Context, query string) (string, error)
}

// LookupError reports a failed or timed-out backend call.
type LookupError struct {
	Backend string
	Query   string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q via %s: %v", e.Query, e.Backend, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Step wraps a backend with a per-call deadline.
type Step struct {
	backend Backend
	timeout time.Duration
	log     *zap.Logger
}

// NewStep wires a lookup step. Zero timeout means no step-level deadline.
func NewStep(backend Backend, timeout time.Duration, log *zap.Logger) *Step {
	return &Step{
		backend: backend,
		timeout: timeout,
		log:     logger.OrNop(log).With(zap.String("step", "research"), zap.String("backend", backend.Name())),
	}
}

// Run returns the backend's summary for query unchanged.
func (s *Step) Run(ctx context.Context, query string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.backend.Lookup(ctx, query)
	if err != nil {
		return "", &LookupError{Backend: s.backend.Name(), Query: query, Err: err}
	}
	s.log.Debug("lookup finished", zap.Duration("duration", time.Since(start)), zap.Int("chars", len(out)))
	return out, nil
}

// Page is one summarized article.
type Page struct {
	Title   string
	Summary string
}

// FormatPages renders pages as "Page: title\nSummary: summary" blocks joined
// by a blank line, skipping empty summaries, truncated to maxChars runes.
// If nothing remains it returns notFound.
func FormatPages(pages []Page, maxChars int, notFound string) string {
	var blocks []string
	for _, p := range pages {
		summary := strings.TrimSpace(p.Summary)
		if summary == "" {
			continue
		}
		blocks = append(blocks, "Page: "+p.Title+"\nSummary: "+summary)
	}
	if len(blocks) == 0 {
		return notFound
	}
	return truncateRunes(strings.Join(blocks, "\n\n"), maxChars)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
