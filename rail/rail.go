package rail

import "math"

const (
	DefaultStep         = 300
	DefaultPlaceholders = 8
	// DefaultViewport es el ancho supuesto hasta que el navegador mida.
	DefaultViewport = 1200
)

// Direction del desplazamiento.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Slot es una posición dibujable de la fila: un item o un placeholder.
type Slot[T any] struct {
	Item        T
	Placeholder bool
}

// Rail es una instancia de fila. Es dueña de su posición de scroll: solo
// ScrollBy, OnScroll y OnResize la cambian.
type Rail[T any] struct {
	ID string

	items        []T
	loading      bool
	metrics      Metrics
	state        State
	step         float64
	tolerance    float64
	placeholders int
	layout       Layout
}

type Option func(*settings)

type settings struct {
	step         float64
	tolerance    float64
	placeholders int
	layout       Layout
	viewport     float64
}

// WithStep fija el salto en pixeles de cada flecha.
func WithStep(px float64) Option {
	return func(s *settings) {
		if px > 0 {
			s.step = px
		}
	}
}

func WithTolerance(t float64) Option {
	return func(s *settings) {
		if t >= 0 {
			s.tolerance = t
		}
	}
}

// WithPlaceholders fija cuántas tarjetas fantasma se dibujan mientras carga.
func WithPlaceholders(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.placeholders = n
		}
	}
}

// WithLayout fija el tamaño de tarjeta usado para estimar el ancho del
// contenido antes de la primera medición real.
func WithLayout(l Layout) Option {
	return func(s *settings) { s.layout = l }
}

// WithViewport fija el ancho visible inicial.
func WithViewport(px float64) Option {
	return func(s *settings) {
		if px > 0 {
			s.viewport = px
		}
	}
}

// New arma una fila vacía en estado de carga.
func New[T any](id string, opts ...Option) *Rail[T] {
	s := settings{step: DefaultStep, tolerance: DefaultTolerance, placeholders: DefaultPlaceholders, layout: DefaultLayout, viewport: DefaultViewport}
	for _, opt := range opts {
		opt(&s)
	}
	return &Rail[T]{
		ID:           id,
		loading:      true,
		step:         s.step,
		tolerance:    s.tolerance,
		placeholders: s.placeholders,
		layout:       s.layout,
		metrics:      Metrics{ClientWidth: s.viewport},
		state:        NotScrollable,
	}
}

// SetItems reemplaza el contenido. La medición anterior ya no vale: el
// scroll vuelve a cero y el ancho se estima de nuevo con las tarjetas que se
// van a dibujar (placeholders incluidos).
func (r *Rail[T]) SetItems(items []T, loading bool) State {
	r.items = items
	r.loading = loading
	r.metrics.ScrollLeft = 0
	r.metrics.ScrollWidth = r.layout.ContentWidth(len(r.Slots()))
	return r.recompute()
}

// OnScroll registra un evento de scroll del viewport.
func (r *Rail[T]) OnScroll(scrollLeft float64) State {
	r.metrics.ScrollLeft = scrollLeft
	return r.recompute()
}

// OnResize registra un cambio de tamaño del viewport o del contenido.
func (r *Rail[T]) OnResize(scrollWidth, clientWidth float64) State {
	r.metrics.ScrollWidth = scrollWidth
	r.metrics.ClientWidth = clientWidth
	return r.recompute()
}

// ScrollBy mueve la fila un paso en la dirección dada y devuelve el
// desplazamiento destino. Sin efecto si la fila no es desplazable.
func (r *Rail[T]) ScrollBy(dir Direction) float64 {
	if r.state == NotScrollable {
		return r.metrics.ScrollLeft
	}
	target := r.metrics.ScrollLeft + float64(dir)*r.step
	target = math.Max(0, math.Min(target, r.metrics.MaxScroll()))
	r.metrics.ScrollLeft = target
	r.recompute()
	return target
}

func (r *Rail[T]) recompute() State {
	r.state = Classify(r.metrics, r.tolerance)
	return r.state
}

func (r *Rail[T]) State() State { return r.state }

func (r *Rail[T]) Metrics() Metrics { return r.metrics }

func (r *Rail[T]) Step() float64 { return r.step }

func (r *Rail[T]) Affordances() Affordances { return affordancesOf(r.state) }

// ShowsPlaceholders es true mientras carga o si no hay items.
func (r *Rail[T]) ShowsPlaceholders() bool {
	return r.loading || len(r.items) == 0
}

// Slots devuelve lo que hay que dibujar, en orden.
func (r *Rail[T]) Slots() []Slot[T] {
	if r.ShowsPlaceholders() {
		slots := make([]Slot[T], r.placeholders)
		for i := range slots {
			slots[i].Placeholder = true
		}
		return slots
	}
	slots := make([]Slot[T], len(r.items))
	for i, it := range r.items {
		slots[i] = Slot[T]{Item: it}
	}
	return slots
}

// Layout describe las medidas fijas de una tarjeta dentro de la fila.
type Layout struct {
	CardWidth float64
	Gap       float64
}

// DefaultLayout es el tamaño de tarjeta de los templates.
var DefaultLayout = Layout{CardWidth: 220, Gap: 16}

// ContentWidth estima el ancho total de n tarjetas para el primer render.
func (l Layout) ContentWidth(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*l.CardWidth + float64(n-1)*l.Gap
}
