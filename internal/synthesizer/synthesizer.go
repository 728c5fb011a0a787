package synthesizer

import (
	"context"
	"sync"
	"time"

	"github.com/routelens/routelens/pkg/types"
)

// Batch pacing defaults. The generative service is rate limited, so batches
// stay small and requests are staggered.
const (
	DefaultBatchSize    = 3
	DefaultRequestDelay = 500 * time.Millisecond
	DefaultBatchDelay   = 2 * time.Second
)

// AnalysisCache lets the synthesizer skip the external service for routes
// it has already analyzed. Implementations may be nil-safe no-ops.
type AnalysisCache interface {
	Get(route types.Route) (*types.Analysis, bool)
	Put(route types.Route, analysis types.Analysis) error
}

// Synthesizer produces exactly one Analysis per Route. With no generative
// strategy configured it runs the deterministic templates.
type Synthesizer struct {
	generative   *GenerativeStrategy
	template     TemplateStrategy
	cache        AnalysisCache
	batchSize    int
	requestDelay time.Duration
	batchDelay   time.Duration
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithGenerative enables the generative strategy.
func WithGenerative(g *GenerativeStrategy) Option {
	return func(s *Synthesizer) { s.generative = g }
}

// WithCache attaches an analysis cache.
func WithCache(c AnalysisCache) Option {
	return func(s *Synthesizer) { s.cache = c }
}

// WithPacing overrides the batch size and delays, mostly for tests.
func WithPacing(batchSize int, requestDelay, batchDelay time.Duration) Option {
	return func(s *Synthesizer) {
		if batchSize > 0 {
			s.batchSize = batchSize
		}
		s.requestDelay = requestDelay
		s.batchDelay = batchDelay
	}
}

// New builds a Synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		batchSize:    DefaultBatchSize,
		requestDelay: DefaultRequestDelay,
		batchDelay:   DefaultBatchDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SynthesizeAll analyzes every route, preserving input order: each result
// lands in the slot its route started from. One route's failure never
// blocks or invalidates sibling results.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, routes []types.Route) ([]types.Analysis, []types.Diagnostic) {
	analyses := make([]types.Analysis, len(routes))
	var diags []types.Diagnostic

	// Template mode ignores the cache so repeated runs over unchanged
	// input stay byte-identical.
	if s.generative == nil {
		for i := range routes {
			analyses[i] = s.template.Synthesize(routes[i])
		}
		return analyses, diags
	}

	var mu sync.Mutex
	for start := 0; start < len(routes); start += s.batchSize {
		end := start + s.batchSize
		if end > len(routes) {
			end = len(routes)
		}

		// Once the run is canceled, stop issuing new requests and let the
		// remaining routes take the deterministic path.
		if ctx.Err() != nil {
			for i := start; i < len(routes); i++ {
				analyses[i] = s.template.Synthesize(routes[i])
			}
			break
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			if cached, ok := s.cacheGet(routes[i]); ok {
				analyses[i] = *cached
				continue
			}

			wg.Add(1)
			go func(slot int, delay time.Duration) {
				defer wg.Done()
				if delay > 0 {
					select {
					case <-ctx.Done():
					case <-time.After(delay):
					}
				}
				analysis, diag := s.generative.Synthesize(ctx, routes[slot])
				analyses[slot] = analysis
				if diag != nil {
					mu.Lock()
					diags = append(diags, *diag)
					mu.Unlock()
				}
				if diag == nil {
					s.cachePut(routes[slot], analysis)
				}
			}(i, time.Duration(i-start)*s.requestDelay)
		}
		wg.Wait()

		if end < len(routes) && s.batchDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.batchDelay):
			}
		}
	}
	return analyses, diags
}

func (s *Synthesizer) cacheGet(route types.Route) (*types.Analysis, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(route)
}

func (s *Synthesizer) cachePut(route types.Route, analysis types.Analysis) {
	if s.cache == nil {
		return
	}
	// The analysis is already complete, so a failed cache write is not
	// worth surfacing.
	_ = s.cache.Put(route, analysis)
}
