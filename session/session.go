// Package session reemplaza el estado global del cliente (token y carrito)
// por un objeto de sesión explícito que se inyecta donde hace falta.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ferreexpress/catalog"
	"ferreexpress/search"
)

var ErrNotFound = errors.New("session: not found")

// CartItem es una línea del carrito.
type CartItem struct {
	ProductoID string
	Nombre     string
	Precio     float64
	Cantidad   int
}

// Subtotal de la línea.
func (i CartItem) Subtotal() float64 {
	return i.Precio * float64(i.Cantidad)
}

// Session es el estado de un visitante: token de acceso, carrito y
// búsqueda en curso.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	token    string
	cart     []CartItem
	closed   bool
	searcher *search.Searcher
}

// Initialize crea una sesión, opcionalmente con un token ya persistido.
func Initialize(persistedToken string, log zerolog.Logger) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		token:     persistedToken,
		searcher:  search.NewSearcher(search.DefaultLimit, log),
	}
}

// Teardown limpia token y carrito. La sesión no se puede volver a usar.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.cart = nil
	s.closed = true
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.token = token
	}
}

func (s *Session) Searcher() *search.Searcher {
	return s.searcher
}

// AddToCart suma cantidad unidades del producto. Cantidades menores a 1
// cuentan como 1.
func (s *Session) AddToCart(p catalog.Product, cantidad int) {
	if cantidad < 1 {
		cantidad = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.cart {
		if s.cart[i].ProductoID == p.ID {
			s.cart[i].Cantidad += cantidad
			s.cart[i].Precio = p.Precio
			return
		}
	}
	s.cart = append(s.cart, CartItem{ProductoID: p.ID, Nombre: p.Nombre, Precio: p.Precio, Cantidad: cantidad})
}

// Cart devuelve una copia de las líneas del carrito.
func (s *Session) Cart() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// CartTotal suma los subtotales.
func (s *Session) CartTotal() float64 {
	var total float64
	for _, it := range s.Cart() {
		total += it.Subtotal()
	}
	return total
}

// CartCount cuenta unidades.
func (s *Session) CartCount() int {
	n := 0
	for _, it := range s.Cart() {
		n += it.Cantidad
	}
	return n
}
