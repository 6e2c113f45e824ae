// Package search implementa la búsqueda mientras se escribe contra el
// backend, descartando respuestas que llegan fuera de orden.
package search

import "sync"

// Guard entrega tickets crecientes. Solo el último ticket emitido puede
// confirmar su resultado; cualquier respuesta anterior que llegue tarde se
// descarta.
type Guard struct {
	mu  sync.Mutex
	gen uint64
}

// Begin emite un ticket nuevo e invalida todos los anteriores.
func (g *Guard) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	return g.gen
}

// Commit ejecuta apply si ticket sigue siendo el último. apply corre con el
// lock tomado, así que no puede intercalarse con otro Commit.
func (g *Guard) Commit(ticket uint64, apply func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ticket != g.gen {
		return false
	}
	apply()
	return true
}

// Current informa si ticket sigue vigente.
func (g *Guard) Current(ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ticket == g.gen
}
