package catalog

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var copTag = language.MustParse("es-CO")

// FormatCOP formatea un monto en pesos colombianos sin decimales,
// p. ej. "$ 1.234.567".
func FormatCOP(amount float64) string {
	p := message.NewPrinter(copTag)
	return p.Sprintf("$ %d", int64(math.Round(amount)))
}

// ResolveImage arma la URL de una imagen relativa contra la base de assets.
// Las URLs absolutas se devuelven tal cual; una ruta vacía devuelve "".
func ResolveImage(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "//") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
