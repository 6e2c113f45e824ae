package search

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"ferreexpress/catalog"
)

// DefaultLimit es la cantidad de resultados que se piden por búsqueda.
const DefaultLimit = 24

// Backend hace la búsqueda del lado del servidor.
type Backend interface {
	SearchProductos(ctx context.Context, term string, page, limit int) ([]catalog.Product, error)
}

// Result es el último resultado confirmado. Err es el error de la última
// búsqueda vigente; los productos de la búsqueda exitosa anterior se
// conservan.
type Result struct {
	Term      string
	Productos []catalog.Product
	Err       error
}

// Searcher mantiene el resultado de las búsquedas de una sesión.
type Searcher struct {
	guard Guard
	limit int
	log   zerolog.Logger

	mu           sync.Mutex
	latest       Result
	cancel       context.CancelFunc
	cancelTicket uint64

	// onTicket corre entre Begin y el cambio de cancel; solo lo usan los tests.
	onTicket func(term string)
}

func NewSearcher(limit int, log zerolog.Logger) *Searcher {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Searcher{limit: limit, log: log}
}

// Search busca term y devuelve el último resultado confirmado, que puede
// ser el de una búsqueda más nueva si esta quedó vieja mientras volaba.
func (s *Searcher) Search(ctx context.Context, backend Backend, term string) Result {
	term = strings.TrimSpace(term)
	ticket := s.guard.Begin()
	if s.onTicket != nil {
		s.onTicket(term)
	}

	// se cancela solo una búsqueda con ticket anterior; si ya arrancó una
	// más nueva, la que sobra es esta
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	if ticket > s.cancelTicket {
		if s.cancel != nil {
			s.cancel()
		}
		s.cancel, s.cancelTicket = cancel, ticket
	} else {
		cancel()
	}
	s.mu.Unlock()

	if !s.guard.Current(ticket) {
		s.log.Debug().Str("term", term).Msg("search superseded before start")
		return s.Latest()
	}

	if term == "" {
		s.guard.Commit(ticket, func() { s.set(Result{}) })
		return s.Latest()
	}

	productos, err := backend.SearchProductos(ctx, term, 1, s.limit)

	committed := s.guard.Commit(ticket, func() {
		if err != nil {
			prev := s.Latest()
			prev.Err = err
			s.set(prev)
			return
		}
		s.set(Result{Term: term, Productos: productos})
	})
	if !committed {
		s.log.Debug().Str("term", term).Msg("discarding stale search response")
	} else if err != nil {
		s.log.Warn().Err(err).Str("term", term).Msg("search failed")
	}
	return s.Latest()
}

func (s *Searcher) set(r Result) {
	s.mu.Lock()
	s.latest = r
	s.mu.Unlock()
}

// Latest devuelve el último resultado confirmado.
func (s *Searcher) Latest() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
