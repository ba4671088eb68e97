// internal/directus/aggregator.go
package directus

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"tourism-chatbot/internal/common/logger"
)

var ErrNoCollections = errors.New("no collections configured")

// Fetcher is the per-collection retrieval dependency. Implementations must
// absorb their own failures and always return a result.
type Fetcher interface {
	FetchCollection(ctx context.Context, name, search string) CollectionResult
}

// Aggregator fans retrieval out across the configured collection list and
// merges the results into per-collection maps.
type Aggregator struct {
	fetcher           Fetcher
	collections       []string
	includeUnfiltered bool
	logger            logger.Logger
}

func NewAggregator(fetcher Fetcher, collections []string, includeUnfiltered bool, log logger.Logger) *Aggregator {
	cleaned := make([]string, 0, len(collections))
	for _, name := range collections {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return &Aggregator{
		fetcher:           fetcher,
		collections:       cleaned,
		includeUnfiltered: includeUnfiltered,
		logger: log.With(map[string]interface{}{
			"component": "aggregator",
		}),
	}
}

// Collections returns the configured collection list.
func (a *Aggregator) Collections() []string {
	return a.collections
}

// FetchAll dispatches one fetch per collection concurrently and waits for
// all of them before returning. Because the fetcher never fails, the merge
// always completes with best-effort data for every requested collection.
func (a *Aggregator) FetchAll(ctx context.Context, names []string, search string) map[string]CollectionResult {
	results := make(map[string]CollectionResult, len(names))

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, name := range names {
		wg.Add(1)
		go func(collection string) {
			defer wg.Done()
			records := a.fetcher.FetchCollection(ctx, collection, search)
			mu.Lock()
			results[collection] = records
			mu.Unlock()
		}(name)
	}

	wg.Wait()
	return results
}

// Data performs full-mode retrieval: one keyword-filtered pass plus, when
// enabled, one unfiltered pass so context is available even when the search
// matches nothing.
func (a *Aggregator) Data(ctx context.Context, question string) (*AggregatedData, error) {
	if len(a.collections) == 0 {
		return nil, ErrNoCollections
	}

	searchResults := a.FetchAll(ctx, a.collections, question)

	allData := searchResults
	if a.includeUnfiltered {
		allData = a.FetchAll(ctx, a.collections, "")
	}

	a.logger.Info("full retrieval completed", map[string]interface{}{
		"collections":       len(a.collections),
		"includeUnfiltered": a.includeUnfiltered,
	})

	return &AggregatedData{
		SearchResults: searchResults,
		AllData:       allData,
		Metadata: Metadata{
			Query:       question,
			Timestamp:   time.Now().UTC(),
			Collections: a.collections,
		},
	}, nil
}

// DataCompact performs compact-mode retrieval: a single keyword-filtered
// pass with empty collections pruned. Its key set is always a subset of the
// full-mode search results.
func (a *Aggregator) DataCompact(ctx context.Context, question string) (map[string]CollectionResult, error) {
	if len(a.collections) == 0 {
		return nil, ErrNoCollections
	}

	results := a.FetchAll(ctx, a.collections, question)
	for name, records := range results {
		if len(records) == 0 {
			delete(results, name)
		}
	}

	a.logger.Info("compact retrieval completed", map[string]interface{}{
		"collections": len(results),
	})

	return results, nil
}
