package index

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phil777/curiefense/internal/connections"
	"github.com/phil777/curiefense/internal/fetch"
	"github.com/phil777/curiefense/internal/metrics"
	"github.com/phil777/curiefense/internal/normalize"
	"github.com/phil777/curiefense/internal/types"
)

// Builder rebuilds the aggregate index for a branch: one concurrent fetch per
// document type, normalization, connection resolution, and a fixed-order
// merge into the Store.
//
// Every Rebuild carries a request token. When a newer Rebuild starts before
// an older one finishes, the older result no longer matches the current token
// and is discarded, so a stale branch can never overwrite a newer one.
type Builder struct {
	logger  *zap.Logger
	fetcher fetch.DocumentFetcher
	store   *Store
	metrics metrics.Metrics

	mu           sync.Mutex
	currentToken string
}

// NewBuilder creates a Builder. A nil metrics implementation defaults to Noop.
func NewBuilder(logger *zap.Logger, fetcher fetch.DocumentFetcher, store *Store, m metrics.Metrics) *Builder {
	if m == nil {
		m = metrics.Noop{}
	}
	return &Builder{
		logger:  logger.Named("index"),
		fetcher: fetcher,
		store:   store,
		metrics: m,
	}
}

// Rebuild fetches all six document collections for the branch and replaces
// the store's index. It blocks until every fetch settles. A fetch failure
// degrades that type to an empty collection and never aborts the batch, so
// the caller always ends up with a (possibly partial) index.
func (b *Builder) Rebuild(ctx context.Context, branch string) {
	token := uuid.NewString()
	b.mu.Lock()
	b.currentToken = token
	b.mu.Unlock()

	b.logger.Debug("Rebuilding aggregate index", zap.String("branch", branch))

	// Scatter: one fetch per document type, results kept per slot so the
	// merge order never depends on completion order.
	results := make([][]types.NormalizedDocument, len(types.AllDocTypes))
	var wg sync.WaitGroup
	wg.Add(len(types.AllDocTypes))
	for i, docType := range types.AllDocTypes {
		go func(slot int, dt types.DocType) {
			defer wg.Done()
			results[slot] = b.fetchOne(ctx, branch, dt)
		}(i, docType)
	}
	wg.Wait()

	merged := []types.NormalizedDocument{}
	for _, docs := range results {
		merged = append(merged, docs...)
	}

	if !b.commit(token, branch, merged) {
		b.metrics.IncRebuildsDiscarded(branch)
		b.logger.Info("Discarding stale rebuild",
			zap.String("branch", branch),
			zap.Int("documents", len(merged)),
		)
		return
	}

	b.metrics.IncRebuilds(branch)
	b.metrics.SetIndexedDocuments(len(merged))
	b.logger.Info("Aggregate index rebuilt",
		zap.String("branch", branch),
		zap.Int("documents", len(merged)),
	)
}

// commit swaps the merged documents into the store, but only while token is
// still the newest rebuild. The token comparison and the swap happen under
// the same lock so a superseded rebuild can never land after its successor's
// documents are already in the store.
func (b *Builder) commit(token, branch string, merged []types.NormalizedDocument) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.currentToken != token {
		return false
	}
	b.store.Replace(branch, merged)
	return true
}

// fetchOne retrieves and normalizes one document type. Failures degrade to an
// empty collection.
func (b *Builder) fetchOne(ctx context.Context, branch string, docType types.DocType) []types.NormalizedDocument {
	raw, err := b.fetcher.FetchDocuments(ctx, branch, docType)
	if err != nil {
		b.metrics.IncFetchFailures(string(docType))
		b.logger.Warn("Document fetch failed, continuing without this type",
			zap.String("doctype", string(docType)),
			zap.String("branch", branch),
			zap.Error(err),
		)
		return []types.NormalizedDocument{}
	}

	docs := make([]types.NormalizedDocument, 0, len(raw))
	for _, doc := range raw {
		docs = append(docs, connections.Apply(normalize.Normalize(doc, docType)))
	}
	return docs
}
