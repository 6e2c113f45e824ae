package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferreexpress/catalog"
)

// gatedBackend bloquea cada búsqueda hasta que el test la libera.
type gatedBackend struct {
	mu      sync.Mutex
	started chan string
	release map[string]chan struct{}
	fail    map[string]error
}

func newGated(terms ...string) *gatedBackend {
	b := &gatedBackend{
		started: make(chan string, len(terms)),
		release: map[string]chan struct{}{},
		fail:    map[string]error{},
	}
	for _, t := range terms {
		b.release[t] = make(chan struct{})
	}
	return b
}

func (b *gatedBackend) SearchProductos(ctx context.Context, term string, _, _ int) ([]catalog.Product, error) {
	b.mu.Lock()
	gate := b.release[term]
	err := b.fail[term]
	b.mu.Unlock()

	b.started <- term
	select {
	case <-gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return []catalog.Product{{ID: term, Nombre: "resultado " + term}}, nil
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	backend := newGated("a", "ab")
	s := NewSearcher(10, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Search(context.Background(), backend, "a")
	}()
	require.Equal(t, "a", <-backend.started)

	done := make(chan Result, 1)
	go func() {
		done <- s.Search(context.Background(), backend, "ab")
	}()
	require.Equal(t, "ab", <-backend.started)

	// "ab" responde primero, "a" llega tarde
	close(backend.release["ab"])
	res := <-done
	assert.Equal(t, "ab", res.Term)

	close(backend.release["a"])
	wg.Wait()

	latest := s.Latest()
	assert.Equal(t, "ab", latest.Term)
	require.Len(t, latest.Productos, 1)
	assert.Equal(t, "ab", latest.Productos[0].ID)
}

func TestOlderSearchDoesNotCancelNewer(t *testing.T) {
	backend := newGated("a", "ab")
	s := NewSearcher(10, zerolog.Nop())

	paused := make(chan struct{})
	resume := make(chan struct{})
	s.onTicket = func(term string) {
		if term == "a" {
			close(paused)
			<-resume
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Search(context.Background(), backend, "a")
	}()
	<-paused

	done := make(chan Result, 1)
	go func() {
		done <- s.Search(context.Background(), backend, "ab")
	}()
	require.Equal(t, "ab", <-backend.started)

	// "a" retoma con ticket viejo mientras "ab" sigue en vuelo
	close(resume)
	close(backend.release["a"])
	wg.Wait()

	close(backend.release["ab"])
	res := <-done
	require.NoError(t, res.Err)
	assert.Equal(t, "ab", res.Term)
	require.Len(t, res.Productos, 1)
	assert.Equal(t, "ab", res.Productos[0].ID)
}

func TestFailedSearchKeepsPreviousResults(t *testing.T) {
	backend := newGated("taladro", "taladro x")
	backend.fail["taladro x"] = errors.New("boom")
	close(backend.release["taladro"])
	close(backend.release["taladro x"])

	s := NewSearcher(10, zerolog.Nop())
	res := s.Search(context.Background(), backend, "taladro")
	<-backend.started
	require.NoError(t, res.Err)

	res = s.Search(context.Background(), backend, "taladro x")
	<-backend.started
	require.Error(t, res.Err)
	assert.Equal(t, "taladro", res.Term)
	assert.Len(t, res.Productos, 1)
}

func TestEmptyTermClearsWithoutBackendCall(t *testing.T) {
	backend := newGated()
	s := NewSearcher(0, zerolog.Nop())
	res := s.Search(context.Background(), backend, "   ")
	assert.Equal(t, Result{}, res)
	assert.Len(t, backend.started, 0)
}

func TestGuard(t *testing.T) {
	var g Guard
	first := g.Begin()
	second := g.Begin()

	applied := false
	assert.False(t, g.Commit(first, func() { applied = true }))
	assert.False(t, applied)
	assert.False(t, g.Current(first))

	assert.True(t, g.Commit(second, func() { applied = true }))
	assert.True(t, applied)
}
