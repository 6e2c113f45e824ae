package catalog

import (
	"sort"
	"time"
)

// DefaultRecentLimit es el tamaño del carril de novedades.
const DefaultRecentLimit = 12

// Recent devuelve los limit productos más nuevos, del más reciente al más
// antiguo. Un producto sin fecha cuenta como del 1970-01-01 UTC. Trabaja
// sobre una copia: la entrada no se reordena.
func Recent(products []Product, limit int) []Product {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	sorted := make([]Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return createdOrEpoch(sorted[i]).After(createdOrEpoch(sorted[j]))
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

var epoch = time.Unix(0, 0).UTC()

func createdOrEpoch(p Product) time.Time {
	if p.CreatedAt.IsZero() {
		return epoch
	}
	return p.CreatedAt
}
