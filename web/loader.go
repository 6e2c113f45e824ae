package web

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"ferreexpress/api"
	"ferreexpress/catalog"
)

// Fallback es una fuente alternativa del catálogo (el espejo en Postgres).
type Fallback interface {
	Load(ctx context.Context) ([]catalog.Product, error)
}

// CatalogLoader trae el catálogo completo y recuerda la última carga buena.
// Si una carga falla devuelve lo que ya tenía junto con el error.
type CatalogLoader struct {
	client   *api.Client
	limit    int
	maxPages int
	fallback Fallback
	log      zerolog.Logger

	mu     sync.Mutex
	last   []catalog.Product
	loaded bool
}

func NewCatalogLoader(client *api.Client, limit, maxPages int, fallback Fallback, log zerolog.Logger) *CatalogLoader {
	return &CatalogLoader{client: client, limit: limit, maxPages: maxPages, fallback: fallback, log: log}
}

// Load devuelve el catálogo. Con error, los productos son los de la última
// carga exitosa (o los del espejo si nunca hubo una).
func (l *CatalogLoader) Load(ctx context.Context) ([]catalog.Product, error) {
	products, err := l.client.FetchAllProductos(ctx, l.limit, l.maxPages)
	if err == nil {
		l.mu.Lock()
		l.last = products
		l.loaded = true
		l.mu.Unlock()
		return products, nil
	}

	l.log.Warn().Err(err).Msg("catalog load failed")

	l.mu.Lock()
	last, loaded := l.last, l.loaded
	l.mu.Unlock()
	if loaded {
		return last, err
	}

	if l.fallback != nil {
		mirrored, ferr := l.fallback.Load(ctx)
		if ferr != nil {
			l.log.Warn().Err(ferr).Msg("mirror fallback failed")
			return nil, err
		}
		l.log.Info().Int("productos", len(mirrored)).Msg("serving catalog from mirror")
		return mirrored, err
	}
	return nil, err
}
