package session

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferreexpress/catalog"
)

func TestSessionLifecycle(t *testing.T) {
	s := Initialize("persistido", zerolog.Nop())
	require.NotEmpty(t, s.ID)
	assert.Equal(t, "persistido", s.Token())
	require.NotNil(t, s.Searcher())

	s.AddToCart(catalog.Product{ID: "1", Nombre: "Martillo", Precio: 25000}, 2)
	s.AddToCart(catalog.Product{ID: "1", Nombre: "Martillo", Precio: 24000}, 0)
	s.AddToCart(catalog.Product{ID: "2", Nombre: "Clavos", Precio: 3000}, 1)

	cart := s.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, 3, cart[0].Cantidad)
	assert.Equal(t, 24000.0, cart[0].Precio)
	assert.Equal(t, 4, s.CartCount())
	assert.Equal(t, 3*24000.0+3000, s.CartTotal())

	s.Teardown()
	assert.True(t, s.Closed())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Cart())

	s.SetToken("otro")
	s.AddToCart(catalog.Product{ID: "3"}, 1)
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Cart())
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(time.Hour, zerolog.Nop())
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	s := st.Create("")
	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = st.Get("desconocida")
	assert.ErrorIs(t, err, ErrNotFound)

	now = now.Add(2 * time.Hour)
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, s.Closed())

	st.Create("")
	st.Create("")
	now = now.Add(2 * time.Hour)
	assert.Equal(t, 2, st.Sweep())
	assert.Equal(t, 0, st.Len())
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(0, zerolog.Nop())
	s := st.Create("tok")
	st.Delete(s.ID)
	_, err := st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, s.Closed())
}
