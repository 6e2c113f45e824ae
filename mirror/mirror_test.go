package mirror

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferreexpress/catalog"
)

func newMock(t *testing.T) (*Mirror, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, zerolog.Nop()), mock
}

func anyArgs(n int) []driver.Value {
	args := make([]driver.Value, n)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	return args
}

func TestSyncMatchesByImageThenNameThenInserts(t *testing.T) {
	m, mock := newMock(t)

	byImage := mock.ExpectPrepare(`WHERE imagen = \$8`)
	byName := mock.ExpectPrepare(`WHERE nombre_norm = \$3`)
	insert := mock.ExpectPrepare(`INSERT INTO productos_espejo`)

	cols := []string{"nombre", "precio"}

	// taladro: cruza por imagen con cambio de precio
	byImage.ExpectQuery().WithArgs(anyArgs(8)...).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("Taladro", 100000.0))
	// pala: sin imagen, cruza por nombre sin cambio de precio
	byName.ExpectQuery().WithArgs(anyArgs(8)...).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("Pala", 45000.0))
	// broca: con imagen nueva, sin cruce, se inserta
	byImage.ExpectQuery().WithArgs(anyArgs(8)...).WillReturnRows(sqlmock.NewRows(cols))
	byName.ExpectQuery().WithArgs(anyArgs(8)...).WillReturnRows(sqlmock.NewRows(cols))
	insert.ExpectExec().WithArgs(anyArgs(9)...).WillReturnResult(sqlmock.NewResult(3, 1))

	sum, err := m.Sync(context.Background(), []catalog.Product{
		{ID: "1", Nombre: "Taladro", Precio: 95000, ImagenPrincipal: "img/taladro.jpg"},
		{ID: "2", Nombre: "Pala", Precio: 45000},
		{ID: "3", Nombre: "Broca 1/4", Precio: 3500, ImagenPrincipal: "img/broca.jpg", CreatedAt: time.Now()},
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{Actualizados: 2, Insertados: 1, CambiosPrecio: 1}, sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad(t *testing.T) {
	m, mock := newMock(t)
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT backend_id, nombre`).WillReturnRows(
		sqlmock.NewRows([]string{"backend_id", "nombre", "marca", "categoria", "precio", "imagen", "stock", "created_at"}).
			AddRow("1", "Arena", "", "Construcción", 12000.0, "", nil, nil).
			AddRow("2", "Taladro", "Bosch", "Herramientas", 95000.0, "img/t.jpg", 3.0, created),
	)

	got, err := m.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Stock)
	assert.True(t, got[0].CreatedAt.IsZero())
	require.NotNil(t, got[1].Stock)
	assert.Equal(t, 3.0, *got[1].Stock)
	assert.Equal(t, created, got[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenWithoutDSN(t *testing.T) {
	_, err := Open("", zerolog.Nop())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
