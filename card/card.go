// Package card define la tarjeta de producto: qué muestra y cómo reparte
// los clics entre el cuerpo y los botones de acción.
package card

import (
	"net/url"

	"ferreexpress/catalog"
)

// PlaceholderImage se usa cuando el producto no tiene imagen principal.
const PlaceholderImage = "/static/img/producto-placeholder.svg"

// Target es el elemento donde se originó un clic.
type Target int

const (
	TargetBody Target = iota
	TargetAddButton
	TargetBuyButton
)

// Card es la tarjeta con sus callbacks. Los botones cortan la propagación,
// así un clic en "Agregar" nunca abre el detalle.
type Card struct {
	Product *catalog.Product
	Loading bool

	OnView func()
	OnAdd  func()
	OnBuy  func()
}

// event es un clic que burbujea desde el target hacia el cuerpo.
type event struct {
	stopped bool
}

func (e *event) stopPropagation() { e.stopped = true }

// Click despacha un clic sobre target.
func (c Card) Click(target Target) {
	if c.Loading || c.Product == nil {
		return
	}
	ev := &event{}

	switch target {
	case TargetAddButton:
		c.handleAction(ev, c.OnAdd)
	case TargetBuyButton:
		c.handleAction(ev, c.OnBuy)
	}

	if ev.stopped {
		return
	}
	if c.OnView != nil {
		c.OnView()
	}
}

func (c Card) handleAction(ev *event, fn func()) {
	ev.stopPropagation()
	if !c.Product.Disponible() || fn == nil {
		return
	}
	fn()
}

// View es el modelo que dibuja el template de tarjeta.
type View struct {
	Placeholder bool
	ID          string
	Nombre      string
	Marca       string
	Precio      string
	Imagen      string
	Disponible  bool
	ViewURL     string
	AddURL      string
	BuyURL      string
}

// FromProduct arma la vista de una tarjeta. assetsBase resuelve las rutas
// relativas de imagen.
func FromProduct(p catalog.Product, assetsBase string) View {
	img := catalog.ResolveImage(assetsBase, p.ImagenPrincipal)
	if img == "" {
		img = PlaceholderImage
	}
	return View{
		ID:         p.ID,
		Nombre:     p.Nombre,
		Marca:      p.Marca,
		Precio:     catalog.FormatCOP(p.Precio),
		Imagen:     img,
		Disponible: p.Disponible(),
		ViewURL:    "/producto/" + url.PathEscape(p.ID),
		AddURL:     "/carrito",
		BuyURL:     "/comprar",
	}
}

// Placeholder es la tarjeta fantasma de carga.
func Placeholder() View {
	return View{Placeholder: true, Imagen: PlaceholderImage}
}

// Views convierte una lista de productos.
func Views(products []catalog.Product, assetsBase string) []View {
	out := make([]View, len(products))
	for i, p := range products {
		out[i] = FromProduct(p, assetsBase)
	}
	return out
}
