package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

/* ================= NORMALIZADOR ================= */

// Normalize pasa a minúsculas, quita acentos, convierte ñ en n y colapsa
// los espacios. Sirve para comparar nombres y términos de búsqueda.
func Normalize(s string) string {
	s = strings.ToLower(s)

	// separar acentos
	t := norm.NFD.String(s)

	var b strings.Builder
	space := false
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r == 'ñ' {
			r = 'n'
		}
		if unicode.IsSpace(r) {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SearchKey es Normalize con los espacios como '+', el formato que usa el
// espejo para cruzar por nombre.
func SearchKey(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "+")
}
