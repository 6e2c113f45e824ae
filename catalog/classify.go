package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SinCategoria es la etiqueta para productos sin categoría utilizable.
const SinCategoria = "Sin categoría"

// Classify devuelve la etiqueta de categoría de un producto. Nunca devuelve
// una cadena vacía.
func Classify(p Product) string {
	if c := strings.TrimSpace(p.Categoria); c != "" {
		return c
	}
	for _, c := range p.Categorias {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return SinCategoria
}

// newCollator arma un comparador en español. collate.Collator no es seguro
// para uso concurrente, por eso cada llamada crea el suyo.
func newCollator() *collate.Collator {
	return collate.New(language.Spanish, collate.Loose)
}

/* ================= AGRUPADO ================= */

// Group parte los productos por categoría. Los buckets quedan ordenados por
// etiqueta y los productos de cada bucket por nombre, ambos con collation
// española. La entrada no se modifica.
func Group(products []Product) []Bucket {
	col := newCollator()

	index := make(map[string]int)
	buckets := make([]Bucket, 0)
	for _, p := range products {
		label := Classify(p)
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, Bucket{Label: label})
		}
		buckets[i].Products = append(buckets[i].Products, p)
	}

	out := buckets[:0]
	for _, b := range buckets {
		if len(b.Products) == 0 {
			continue
		}
		sort.SliceStable(b.Products, func(i, j int) bool {
			return col.CompareString(b.Products[i].Nombre, b.Products[j].Nombre) < 0
		})
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Label, out[j].Label) < 0
	})
	return out
}

// Labels devuelve las etiquetas de los buckets en orden.
func Labels(buckets []Bucket) []string {
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	return labels
}

// Find busca el bucket con la etiqueta dada.
func Find(buckets []Bucket, label string) (Bucket, bool) {
	for _, b := range buckets {
		if b.Label == label {
			return b, true
		}
	}
	return Bucket{}, false
}
