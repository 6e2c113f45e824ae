package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ferreexpress/catalog"
)

// flexString acepta un string o un número JSON (los ids llegan de las dos formas).
type flexString struct {
	value string
	set   bool
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f.value, f.set = s, true
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	f.value, f.set = n.String(), true
	return nil
}

// flexNumber acepta un número o un string numérico (p. ej. NUMERIC de Postgres).
type flexNumber struct {
	value float64
	set   bool
	bad   bool
}

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			f.set, f.bad = true, true
			return nil
		}
		f.value, f.set = v, true
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.value, f.set = v, true
	return nil
}

// productoWire es la forma suelta que manda el backend.
type productoWire struct {
	ID              flexString `json:"id"`
	Nombre          string     `json:"nombre"`
	Precio          flexNumber `json:"precio"`
	Marca           *string    `json:"marca"`
	Categoria       *string    `json:"categoria"`
	Categorias      []string   `json:"categorias"`
	ImagenPrincipal *string    `json:"imagen_principal"`
	CreatedAt       *string    `json:"created_at"`
	Stock           flexNumber `json:"stock"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime devuelve el tiempo cero si la fecha falta o no se puede leer.
func parseTime(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	v := strings.TrimSpace(*s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toProduct valida el registro y lo convierte en un catalog.Product.
func (w productoWire) toProduct() (catalog.Product, error) {
	id := strings.TrimSpace(w.ID.value)
	if !w.ID.set || id == "" {
		return catalog.Product{}, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	nombre := strings.TrimSpace(w.Nombre)
	if nombre == "" {
		return catalog.Product{}, fmt.Errorf("%w: producto %s without nombre", ErrInvalidRecord, id)
	}
	if !w.Precio.set || w.Precio.bad || w.Precio.value < 0 {
		return catalog.Product{}, fmt.Errorf("%w: producto %s with invalid precio", ErrInvalidRecord, id)
	}

	p := catalog.Product{
		ID:              id,
		Nombre:          nombre,
		Precio:          w.Precio.value,
		Marca:           strings.TrimSpace(deref(w.Marca)),
		Categoria:       deref(w.Categoria),
		Categorias:      w.Categorias,
		ImagenPrincipal: strings.TrimSpace(deref(w.ImagenPrincipal)),
		CreatedAt:       parseTime(w.CreatedAt),
	}
	if w.Stock.set && !w.Stock.bad {
		stock := w.Stock.value
		p.Stock = &stock
	}
	return p, nil
}

// decodeList acepta {"productos": [...]} o un arreglo pelado.
func decodeList(body []byte) ([]productoWire, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []productoWire
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("unmarshal productos: %w", err)
		}
		return items, nil
	}
	var envelope struct {
		Productos []productoWire `json:"productos"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal productos: %w", err)
	}
	return envelope.Productos, nil
}

// decodeOne acepta el registro pelado o {"producto": {...}}.
func decodeOne(body []byte) (productoWire, error) {
	var envelope struct {
		Producto *productoWire `json:"producto"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Producto != nil {
		return *envelope.Producto, nil
	}
	var w productoWire
	if err := json.Unmarshal(body, &w); err != nil {
		return productoWire{}, fmt.Errorf("unmarshal producto: %w", err)
	}
	return w, nil
}

// Imagen es una imagen adicional de un producto.
type Imagen struct {
	URL string `json:"url"`
}

func decodeImagenes(body []byte) ([]Imagen, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Imagen
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("unmarshal imagenes: %w", err)
		}
		return items, nil
	}
	var envelope struct {
		Imagenes []Imagen `json:"imagenes"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal imagenes: %w", err)
	}
	return envelope.Imagenes, nil
}
