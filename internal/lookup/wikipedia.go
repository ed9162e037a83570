// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/product-autogpt/internal/httputil"
	"github.com/pdiddy/product-autogpt/internal/logger"
	"github.com/pdiddy/product-autogpt/pkg/types"
)

// wikipediaAPIBase is the MediaWiki action API endpoint pattern; %s is the
// language edition. Declared as a var so tests can substitute an httptest
// server.
var wikipediaAPIBase = "https://%s.wikipedia.org/w/api.php"

// WikipediaNotFound is returned, as a successful result, when a search has
// no usable pages.
const WikipediaNotFound = "No good Wikipedia Search Result was found"

// maxQueryRunes is the longest srsearch value MediaWiki accepts; longer
// queries fail with request_too_long.
const maxQueryRunes = 300

// errPageUnavailable marks a per-page API error. Such pages are skipped.
var errPageUnavailable = errors.New("page unavailable")

// WikipediaBackend searches Wikipedia and summarizes the top pages.
type WikipediaBackend struct {
	Client *http.Client
	Config types.LookupConfig

	// Log receives skipped-page warnings. Nil discards them.
	Log *zap.Logger
}

// Name returns the backend identifier.
func (b *WikipediaBackend) Name() string { return string(types.LookupWikipedia) }

// Lookup runs a full-text search and fetches the plain-text intro of each
// hit in rank order. A blank query returns WikipediaNotFound without a
// request. Queries longer than maxQueryRunes are cut. A page whose extract
// request reports an API error is skipped; transport and HTTP errors abort.
func (b *WikipediaBackend) Lookup(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return WikipediaNotFound, nil
	}
	query = truncateRunes(query, maxQueryRunes)

	topK := b.Config.TopK
	if topK <= 0 {
		topK = types.DefaultLookupTopK
	}

	titles, err := b.search(ctx, query, topK)
	if err != nil {
		return "", err
	}

	var pages []Page
	for _, title := range titles {
		summary, err := b.extract(ctx, title)
		if errors.Is(err, errPageUnavailable) {
			logger.OrNop(b.Log).Warn("skipping Wikipedia page", zap.String("title", title), zap.Error(err))
			continue
		}
		if err != nil {
			return "", err
		}
		pages = append(pages, Page{Title: title, Summary: summary})
	}

	return FormatPages(pages, b.Config.MaxChars, WikipediaNotFound), nil
}

func (b *WikipediaBackend) endpoint() string {
	lang := b.Config.Language
	if lang == "" {
		lang = types.DefaultLookupLanguage
	}
	return fmt.Sprintf(wikipediaAPIBase, lang)
}

func (b *WikipediaBackend) search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(limit)},
		"format":   {"json"},
	}

	var sr wikiSearchResponse
	if err := httputil.GetJSON(ctx, b.Client, b.endpoint()+"?"+params.Encode(), b.Config.UserAgent, &sr); err != nil {
		return nil, fmt.Errorf("Wikipedia search: %w", err)
	}
	if sr.Error != nil {
		return nil, fmt.Errorf("Wikipedia search: %s: %s", sr.Error.Code, sr.Error.Info)
	}

	titles := make([]string, 0, len(sr.Query.Search))
	for _, hit := range sr.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

func (b *WikipediaBackend) extract(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"redirects":   {"1"},
		"titles":      {title},
		"format":      {"json"},
	}

	var er wikiExtractResponse
	if err := httputil.GetJSON(ctx, b.Client, b.endpoint()+"?"+params.Encode(), b.Config.UserAgent, &er); err != nil {
		return "", fmt.Errorf("Wikipedia extract %q: %w", title, err)
	}
	if er.Error != nil {
		return "", fmt.Errorf("Wikipedia extract %q: %w: %s: %s", title, errPageUnavailable, er.Error.Code, er.Error.Info)
	}

	// One title per request, so at most one page; missing pages have no extract.
	for _, page := range er.Query.Pages {
		return page.Extract, nil
	}
	return "", nil
}

// MediaWiki action API JSON structures.
type wikiAPIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type wikiSearchResponse struct {
	Error *wikiAPIError `json:"error"`
	Query struct {
		Search []struct {
			Title  string `json:"title"`
			PageID int    `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

type wikiExtractResponse struct {
	Error *wikiAPIError `json:"error"`
	Query struct {
		Pages map[string]struct {
			PageID  int    `json:"pageid"`
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}
