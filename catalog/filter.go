package catalog

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Filter hace la búsqueda local sobre el catálogo ya cargado. Cada palabra
// del término tiene que aparecer (en forma difusa) en el nombre, la marca o
// la categoría. Un término vacío devuelve todo.
func Filter(products []Product, query string) []Product {
	words := strings.Fields(Normalize(query))
	if len(words) == 0 {
		out := make([]Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		haystack := Normalize(p.Nombre + " " + p.Marca + " " + Classify(p))
		if matchAll(words, haystack) {
			out = append(out, p)
		}
	}
	return out
}

func matchAll(words []string, haystack string) bool {
	for _, w := range words {
		if !fuzzy.Match(w, haystack) {
			return false
		}
	}
	return true
}
