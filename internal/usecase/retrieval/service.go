// Package retrieval implements the embed, fetch, rerank, assemble pipeline
// that turns a reader question into a bounded context block.
package retrieval

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shahtirth07/pagepal/internal/domain"
	"github.com/shahtirth07/pagepal/internal/metrics"
)

// Sentinel strings returned in place of context when the pipeline comes up
// empty or fails. Callers pass them to the model verbatim, so they are part
// of the API surface and must not drift.
const (
	MsgNoCandidates = "Could not find any potentially relevant documents in the specified book(s)."
	MsgNoChunks     = "Could not find relevant text chunks in the specified book(s)."
	MsgNoContext    = "Could not find relevant context in the specified book(s) after re-ranking."
	MsgStoreError   = "Error retrieving context from database."
)

// Pipeline defaults.
const (
	DefaultK                = 4
	DefaultRerankK          = 5
	DefaultOversampleFactor = 5
	efRuntimeFactor         = 10
)

// Options tunes the pipeline. Zero values fall back to the defaults.
type Options struct {
	// K is the number of documents the approximate search targets.
	K int
	// RerankK caps how many chunks survive the exact rerank.
	RerankK int
	// OversampleFactor widens the candidate fetch beyond K so the exact
	// rerank has something to reorder.
	OversampleFactor int
	// Timeout bounds a single retrieval end to end. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.K <= 0 {
		o.K = DefaultK
	}
	if o.RerankK <= 0 {
		o.RerankK = DefaultRerankK
	}
	if o.OversampleFactor <= 0 {
		o.OversampleFactor = DefaultOversampleFactor
	}
	return o
}

// Service orchestrates context retrieval. Retrieve is total: it always
// returns a usable string and never an error.
type Service struct {
	embed  Embedder
	store  CandidateStore
	cache  Cache
	opts   Options
	logger *zap.Logger
}

// New creates a retrieval service. cache may be nil, which disables
// memoization entirely.
func New(embed Embedder, store CandidateStore, cache Cache, opts Options, logger *zap.Logger) *Service {
	return &Service{
		embed:  embed,
		store:  store,
		cache:  cache,
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// Retrieve returns the context block for a query, or a sentinel message when
// nothing relevant exists or the backend fails. Empty outcomes are cached
// like real context; failures never are, so a recovered backend serves the
// next request normally.
func (s *Service) Retrieve(ctx context.Context, query string, filter domain.Filter) string {
	start := time.Now()
	defer func() {
		metrics.RetrievalDuration.Observe(time.Since(start).Seconds())
	}()

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	fp := fingerprint(query, filter)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, fp); ok {
			metrics.RetrievalRequestsTotal.WithLabelValues("hit").Inc()
			return cached
		}
	}

	contextText, outcome := s.retrieve(ctx, query, filter)
	metrics.RetrievalRequestsTotal.WithLabelValues(outcome).Inc()

	// Failures are transient and must not poison the cache.
	if s.cache != nil && outcome != "error" {
		s.cache.Put(ctx, fp, contextText)
	}
	return contextText
}

// retrieve runs the uncached pipeline. The second return value is the metric
// outcome label: "miss" for real context, "empty" for an empty sentinel,
// "error" for a failure sentinel.
func (s *Service) retrieve(ctx context.Context, query string, filter domain.Filter) (string, string) {
	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		s.logger.Error("Failed to embed query", zap.Error(err))
		return MsgStoreError, "error"
	}

	limit := s.opts.K * s.opts.OversampleFactor
	numCandidates := limit * efRuntimeFactor

	docs, err := s.store.Search(ctx, embResult.Embedding, filter, numCandidates, limit)
	if err != nil {
		s.logger.Error("Candidate search failed", zap.Error(err))
		return MsgStoreError, "error"
	}
	if len(docs) == 0 {
		return MsgNoCandidates, "empty"
	}

	chunkCount := 0
	for _, d := range docs {
		chunkCount += len(d.Chunks)
	}
	if chunkCount == 0 {
		return MsgNoChunks, "empty"
	}

	top := rerank(embResult.Embedding, docs, s.opts.RerankK)
	if len(top) == 0 {
		return MsgNoContext, "empty"
	}

	s.logger.Debug("Retrieved context",
		zap.Int("candidate_docs", len(docs)),
		zap.Int("candidate_chunks", chunkCount),
		zap.Int("reranked", len(top)),
		zap.Float64("top_score", top[0].Score),
	)
	return assembleContext(top), "miss"
}
