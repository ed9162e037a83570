// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/product-autogpt/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "kb", "lookup.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seed(t *testing.T, store *Store) {
	t.Helper()
	_, err := store.Import(context.Background(), []Article{
		{Title: "Water bottle", Summary: "Water bottles are containers for liquids...", Source: "manual"},
		{Title: "Reusable water bottle", Summary: "Designed to be refilled many times."},
		{Title: "Stainless steel", Summary: "An alloy often used for bottles and cutlery."},
		{Title: "Coffee", Summary: "A brewed drink."},
	})
	require.NoError(t, err)
}

// --- Import ---

func TestImportAndCount(t *testing.T) {
	store := testStore(t)
	seed(t, store)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestImportUpsertsByTitle(t *testing.T) {
	store := testStore(t)
	seed(t, store)

	_, err := store.Import(context.Background(), []Article{{Title: "coffee", Summary: "A roasted bean drink."}})
	require.NoError(t, err)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	got, err := store.Search(context.Background(), "coffee", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A roasted bean drink.", got[0].Summary)
}

func TestImportRejectsInvalid(t *testing.T) {
	store := testStore(t)

	_, err := store.Import(context.Background(), []Article{{Title: "ok", Summary: "fine"}, {Title: " ", Summary: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "article 1: empty title")

	_, err = store.Import(context.Background(), []Article{{Title: "t", Summary: ""}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty summary")

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImportFile(t *testing.T) {
	store := testStore(t)
	path := filepath.Join(t.TempDir(), "articles.yaml")
	content := `articles:
  - title: Water bottle
    summary: Water bottles are containers for liquids...
    source: https://en.wikipedia.org/wiki/Water_bottle
  - title: Bamboo
    summary: A fast-growing grass.
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	n, err := store.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = store.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading import file")
}

// --- Search ---

func TestSearch(t *testing.T) {
	store := testStore(t)
	seed(t, store)

	tests := []struct {
		name   string
		query  string
		limit  int
		titles []string
	}{
		{"title matches first, shorter first", "water bottle", 5, []string{"Water bottle", "Reusable water bottle"}},
		{"summary match after title match", "bottle", 5, []string{"Water bottle", "Reusable water bottle", "Stainless steel"}},
		{"case insensitive", "COFFEE", 5, []string{"Coffee"}},
		{"limit", "bottle", 1, []string{"Water bottle"}},
		{"no match", "zeppelin", 5, nil},
		{"wildcards are literal", "%", 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Search(context.Background(), tt.query, tt.limit)
			require.NoError(t, err)
			var titles []string
			for _, a := range got {
				titles = append(titles, a.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_x\\`, escapeLike(`100% _x\`))
}

// --- Backend ---

func TestBackendLookup(t *testing.T) {
	store := testStore(t)
	seed(t, store)

	b := NewBackend(store, types.LookupConfig{TopK: 1, MaxChars: 4000})
	out, err := b.Lookup(context.Background(), "water bottle")
	require.NoError(t, err)
	assert.Equal(t, "Page: Water bottle\nSummary: Water bottles are containers for liquids...", out)
	assert.Equal(t, "local", b.Name())

	out, err = b.Lookup(context.Background(), "zeppelin")
	require.NoError(t, err)
	assert.Equal(t, LocalNotFound, out)
}

func TestMemoryStore(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Import(context.Background(), []Article{{Title: "A", Summary: "B"}})
	require.NoError(t, err)
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
