// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"

	"github.com/pdiddy/product-autogpt/internal/lookup"
	"github.com/pdiddy/product-autogpt/pkg/types"
)

// LocalNotFound is returned, as a successful result, when no article matches.
const LocalNotFound = "No good local knowledge base result was found"

// Backend serves Store articles through the lookup.Backend interface.
type Backend struct {
	Store    *Store
	TopK     int
	MaxChars int
}

// NewBackend builds a lookup backend over store using cfg's limits.
func NewBackend(store *Store, cfg types.LookupConfig) *Backend {
	return &Backend{Store: store, TopK: cfg.TopK, MaxChars: cfg.MaxChars}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return string(types.LookupLocal) }

// Lookup returns matching articles in the same Page/Summary layout the
// Wikipedia backend produces.
func (b *Backend) Lookup(ctx context.Context, query string) (string, error) {
	articles, err := b.Store.Search(ctx, query, b.TopK)
	if err != nil {
		return "", err
	}
	pages := make([]lookup.Page, len(articles))
	for i, a := range articles {
		pages[i] = lookup.Page{Title: a.Title, Summary: a.Summary}
	}
	return lookup.FormatPages(pages, b.MaxChars, LocalNotFound), nil
}
