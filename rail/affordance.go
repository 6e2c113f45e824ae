// Package rail modela una fila de tarjetas con scroll horizontal y las
// flechas que aparecen solo cuando hay más contenido en esa dirección.
package rail

// State es la posición de la fila respecto a su contenido.
type State int

const (
	NotScrollable State = iota
	AtStart
	MidScroll
	AtEnd
)

// DefaultTolerance absorbe el redondeo sub-pixel del navegador.
const DefaultTolerance = 5

func (s State) String() string {
	switch s {
	case AtStart:
		return "at-start"
	case MidScroll:
		return "mid-scroll"
	case AtEnd:
		return "at-end"
	default:
		return "not-scrollable"
	}
}

// ShowPrev indica si se dibuja la flecha "anterior".
func (s State) ShowPrev() bool {
	return s == MidScroll || s == AtEnd
}

// ShowNext indica si se dibuja la flecha "siguiente".
func (s State) ShowNext() bool {
	return s == AtStart || s == MidScroll
}

// Metrics son las medidas de scroll del viewport.
type Metrics struct {
	ScrollLeft  float64 `json:"scrollLeft"`
	ScrollWidth float64 `json:"scrollWidth"`
	ClientWidth float64 `json:"clientWidth"`
}

// MaxScroll es el desplazamiento máximo posible.
func (m Metrics) MaxScroll() float64 {
	if d := m.ScrollWidth - m.ClientWidth; d > 0 {
		return d
	}
	return 0
}

// Classify calcula el estado. Un contenido exactamente igual al ancho
// visible no es desplazable.
func Classify(m Metrics, tolerance float64) State {
	if m.ScrollWidth-m.ClientWidth <= 0 {
		return NotScrollable
	}
	if m.ScrollLeft <= tolerance {
		return AtStart
	}
	if m.ScrollLeft+m.ClientWidth >= m.ScrollWidth-tolerance {
		return AtEnd
	}
	return MidScroll
}

// Affordances es lo que el template necesita para dibujar las flechas.
type Affordances struct {
	State string `json:"state"`
	Prev  bool   `json:"prev"`
	Next  bool   `json:"next"`
}

func affordancesOf(s State) Affordances {
	return Affordances{State: s.String(), Prev: s.ShowPrev(), Next: s.ShowNext()}
}

// Evaluate es Classify más la visibilidad de las flechas.
func Evaluate(m Metrics, tolerance float64) Affordances {
	return affordancesOf(Classify(m, tolerance))
}
