package synthesizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelens/routelens/pkg/types"
)

// fakeClient returns canned responses keyed by call order.
type fakeClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
}

func (f *fakeClient) Name() string { return "fake" }
func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) GenerateJSON(_ context.Context, _ string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	resp := f.responses[(f.calls-1)%len(f.responses)]
	return json.RawMessage(resp), nil
}

func routesFixture(n int) []types.Route {
	routes := make([]types.Route, n)
	for i := range routes {
		routes[i] = types.Route{
			Method: types.MethodGet,
			Path:   fmt.Sprintf("/things%d", i),
		}
	}
	return routes
}

func TestSynthesizeAllTemplateMode(t *testing.T) {
	s := New()
	routes := routesFixture(3)

	analyses, diags := s.SynthesizeAll(context.Background(), routes)

	require.Len(t, analyses, 3)
	assert.Empty(t, diags)
	for _, a := range analyses {
		assert.Equal(t, "template", a.Source)
		assert.NotEmpty(t, a.Summary)
	}
}

func TestSynthesizeAllGenerativeMerges(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"summary": "Refined summary", "description": "Refined description"}`,
	}}
	s := New(
		WithGenerative(NewGenerativeStrategy(client)),
		WithPacing(2, 0, 0),
	)

	analyses, diags := s.SynthesizeAll(context.Background(), routesFixture(1))

	require.Len(t, analyses, 1)
	assert.Empty(t, diags)
	assert.Equal(t, "Refined summary", analyses[0].Summary)
	assert.Equal(t, "generative", analyses[0].Source)
	// Unmentioned fields keep the template baseline.
	assert.NotEmpty(t, analyses[0].StatusCodes)
	assert.NotNil(t, analyses[0].ResponseSchema)
}

func TestSynthesizeAllGenerativeFallsBack(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	s := New(
		WithGenerative(NewGenerativeStrategy(client)),
		WithPacing(3, 0, 0),
	)
	routes := routesFixture(4)

	analyses, diags := s.SynthesizeAll(context.Background(), routes)

	require.Len(t, analyses, 4)
	assert.Len(t, diags, 4)
	for _, a := range analyses {
		assert.Equal(t, "template", a.Source)
		assert.NotEmpty(t, a.Summary)
	}
	for _, d := range diags {
		assert.Equal(t, "synthesizer", d.Stage)
		assert.Equal(t, types.SeverityWarning, d.Severity)
	}
}

func TestSynthesizeAllPreservesOrder(t *testing.T) {
	client := &fakeClient{responses: []string{`{"summary": "Refined"}`}}
	s := New(
		WithGenerative(NewGenerativeStrategy(client)),
		WithPacing(2, 0, 0),
	)
	routes := routesFixture(5)

	analyses, _ := s.SynthesizeAll(context.Background(), routes)

	require.Len(t, analyses, 5)
	for i := range analyses {
		assert.Contains(t, analyses[i].Tags, fmt.Sprintf("things%d", i))
	}
}

func TestSynthesizeAllCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{responses: []string{`{"summary": "never used"}`}}
	s := New(
		WithGenerative(NewGenerativeStrategy(client)),
		WithPacing(2, 0, 0),
	)
	routes := routesFixture(4)

	analyses, _ := s.SynthesizeAll(ctx, routes)

	require.Len(t, analyses, 4)
	for _, a := range analyses {
		assert.Equal(t, "template", a.Source)
	}
	assert.Zero(t, client.calls)
}

// memCache is an in-memory AnalysisCache for tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string]types.Analysis
	hits    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]types.Analysis)}
}

func (m *memCache) key(r types.Route) string { return r.Method + " " + r.Path }

func (m *memCache) Get(r types.Route) (*types.Analysis, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.entries[m.key(r)]
	if !ok {
		return nil, false
	}
	m.hits++
	return &a, true
}

func (m *memCache) Put(r types.Route, a types.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.key(r)] = a
	return nil
}

func TestSynthesizeAllUsesCache(t *testing.T) {
	client := &fakeClient{responses: []string{`{"summary": "Refined"}`}}
	cache := newMemCache()
	s := New(
		WithGenerative(NewGenerativeStrategy(client)),
		WithCache(cache),
		WithPacing(2, 0, 0),
	)
	routes := routesFixture(3)

	first, _ := s.SynthesizeAll(context.Background(), routes)
	callsAfterFirst := client.calls
	second, _ := s.SynthesizeAll(context.Background(), routes)

	assert.Equal(t, 3, callsAfterFirst)
	assert.Equal(t, 3, client.calls, "second run should be served from cache")
	assert.Equal(t, 3, cache.hits)
	assert.Equal(t, first, second)
}
