package web

import (
	"ferreexpress/card"
	"ferreexpress/catalog"
	"ferreexpress/rail"
)

// Pasos de las flechas por página.
const (
	homeStep    = 300
	catalogStep = 150
	detailStep  = 200
)

// RailView es lo que dibuja el template "rail".
type RailView struct {
	ID      string
	Title   string
	MoreURL string
	Cards   []card.View
	State   string
	Prev    bool
	Next    bool
	Step    float64
}

// buildRail arma una fila de tarjetas. Sin productos (o mientras carga) la
// fila muestra placeholders.
func buildRail(id, title string, products []catalog.Product, loading bool, assetsURL string, step float64) RailView {
	r := rail.New[card.View](id, rail.WithStep(step))
	r.SetItems(card.Views(products, assetsURL), loading)

	slots := r.Slots()
	cards := make([]card.View, len(slots))
	for i, s := range slots {
		if s.Placeholder {
			cards[i] = card.Placeholder()
			continue
		}
		cards[i] = s.Item
	}

	aff := r.Affordances()
	return RailView{
		ID:    id,
		Title: title,
		Cards: cards,
		State: aff.State,
		Prev:  aff.Prev,
		Next:  aff.Next,
		Step:  r.Step(),
	}
}

// Toast es un aviso no bloqueante con reintento opcional.
type Toast struct {
	Message  string
	RetryURL string
}

// Page son los datos comunes a todas las páginas.
type Page struct {
	Title     string
	CartCount int
	Toasts    []Toast
}

// AddToast suma un aviso; una página puede tener varias fallas a la vez.
func (p *Page) AddToast(t Toast) {
	p.Toasts = append(p.Toasts, t)
}
