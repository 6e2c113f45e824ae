package catalog

import "time"

// Product es el registro de vista de un producto tal como llega del backend,
// ya validado en la frontera HTTP.
type Product struct {
	ID              string
	Nombre          string
	Precio          float64
	Marca           string
	Categoria       string
	Categorias      []string
	ImagenPrincipal string
	CreatedAt       time.Time // cero = sin fecha (epoch 0)
	Stock           *float64
}

// Disponible indica si el producto admite acciones de compra.
// Sin stock sigue apareciendo en los listados.
func (p Product) Disponible() bool {
	return p.Stock != nil && *p.Stock > 0
}

// Bucket agrupa los productos que comparten la misma etiqueta de categoría.
type Bucket struct {
	Label    string
	Products []Product
}
