// Package mirror mantiene una copia del catálogo en Postgres. Se llena con
// el comando sync y sirve de respaldo cuando el backend no responde en la
// primera carga.
package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"ferreexpress/catalog"
)

var ErrNotConfigured = errors.New("mirror: DATABASE_URL not configured")

const schema = `
CREATE TABLE IF NOT EXISTS productos_espejo (
	id          SERIAL PRIMARY KEY,
	backend_id  TEXT NOT NULL,
	nombre      TEXT NOT NULL,
	nombre_norm TEXT NOT NULL,
	marca       TEXT NOT NULL DEFAULT '',
	categoria   TEXT NOT NULL,
	precio      NUMERIC(14,2) NOT NULL,
	imagen      TEXT NOT NULL DEFAULT '',
	stock       NUMERIC(14,2),
	created_at  TIMESTAMPTZ,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Mirror es el acceso a la tabla espejo.
type Mirror struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open conecta con Postgres. Un dsn vacío devuelve ErrNotConfigured.
func Open(dsn string, log zerolog.Logger) (*Mirror, error) {
	if dsn == "" {
		return nil, ErrNotConfigured
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return New(db, log), nil
}

func New(db *sql.DB, log zerolog.Logger) *Mirror {
	return &Mirror{db: db, log: log}
}

func (m *Mirror) Close() error {
	return m.db.Close()
}

// Migrate crea la tabla si no existe.
func (m *Mirror) Migrate(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate productos_espejo: %w", err)
	}
	return nil
}

// Load devuelve el catálogo guardado, ordenado por nombre.
func (m *Mirror) Load(ctx context.Context) ([]catalog.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT backend_id, nombre, marca, categoria, precio, imagen, stock, created_at
		FROM productos_espejo
		ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("query productos_espejo: %w", err)
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		var (
			p       catalog.Product
			stock   sql.NullFloat64
			created sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Marca, &p.Categoria, &p.Precio, &p.ImagenPrincipal, &stock, &created); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		if stock.Valid {
			v := stock.Float64
			p.Stock = &v
		}
		if created.Valid {
			p.CreatedAt = created.Time
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate productos_espejo: %w", err)
	}
	return out, nil
}
