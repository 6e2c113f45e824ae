package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ferreexpress/catalog"
)

// Summary es el resumen de una sincronización.
type Summary struct {
	Actualizados  int
	Insertados    int
	CambiosPrecio int
}

const updateByImageSQL = `
	WITH old AS (
		SELECT id, precio FROM productos_espejo
		WHERE imagen = $8 AND imagen <> ''
		LIMIT 1
	)
	UPDATE productos_espejo p
	SET backend_id = $1, nombre = $2, nombre_norm = $3, marca = $4,
	    categoria = $5, precio = $6, stock = $7, updated_at = NOW()
	FROM old
	WHERE p.id = old.id
	RETURNING p.nombre, old.precio`

const updateByNameSQL = `
	WITH old AS (
		SELECT id, precio FROM productos_espejo
		WHERE nombre_norm = $3
		LIMIT 1
	)
	UPDATE productos_espejo p
	SET backend_id = $1, nombre = $2, marca = $4, categoria = $5,
	    precio = $6, stock = $7, imagen = $8, updated_at = NOW()
	FROM old
	WHERE p.id = old.id
	RETURNING p.nombre, old.precio`

const insertSQL = `
	INSERT INTO productos_espejo
		(backend_id, nombre, nombre_norm, marca, categoria, precio, stock, imagen, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

/* ================= SYNC ================= */

// Sync vuelca el catálogo en la tabla espejo. Cada producto se cruza
// primero por imagen y después por nombre normalizado; si no hay cruce se
// inserta.
func (m *Mirror) Sync(ctx context.Context, products []catalog.Product) (Summary, error) {
	var sum Summary

	updateByImage, err := m.db.PrepareContext(ctx, updateByImageSQL)
	if err != nil {
		return sum, fmt.Errorf("prepare update by image: %w", err)
	}
	defer updateByImage.Close()

	updateByName, err := m.db.PrepareContext(ctx, updateByNameSQL)
	if err != nil {
		return sum, fmt.Errorf("prepare update by name: %w", err)
	}
	defer updateByName.Close()

	insert, err := m.db.PrepareContext(ctx, insertSQL)
	if err != nil {
		return sum, fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	for _, p := range products {
		args := []any{
			p.ID,
			p.Nombre,
			catalog.SearchKey(p.Nombre),
			p.Marca,
			catalog.Classify(p),
			p.Precio,
			nullStock(p.Stock),
			p.ImagenPrincipal,
		}

		// ===== 1) CRUCE POR IMAGEN =====
		if p.ImagenPrincipal != "" {
			matched, err := m.update(ctx, updateByImage, "image", p, args, &sum)
			if err != nil {
				return sum, err
			}
			if matched {
				continue
			}
		}

		// ===== 2) CRUCE POR NOMBRE NORMALIZADO =====
		matched, err := m.update(ctx, updateByName, "name", p, args, &sum)
		if err != nil {
			return sum, err
		}
		if matched {
			continue
		}

		// ===== 3) ALTA =====
		if _, err := insert.ExecContext(ctx, append(args, nullTime(p))...); err != nil {
			return sum, fmt.Errorf("insert producto %s: %w", p.ID, err)
		}
		sum.Insertados++
	}

	m.log.Info().
		Int("actualizados", sum.Actualizados).
		Int("insertados", sum.Insertados).
		Int("cambios_precio", sum.CambiosPrecio).
		Msg("mirror sync finished")
	return sum, nil
}

func (m *Mirror) update(ctx context.Context, stmt *sql.Stmt, by string, p catalog.Product, args []any, sum *Summary) (bool, error) {
	var (
		name     string
		oldPrice float64
	)
	err := stmt.QueryRowContext(ctx, args...).Scan(&name, &oldPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update producto %s by %s: %w", p.ID, by, err)
	}

	if oldPrice != p.Precio {
		m.log.Info().Str("by", by).Str("nombre", name).
			Float64("antes", oldPrice).Float64("ahora", p.Precio).
			Msg("price change")
		sum.CambiosPrecio++
	}
	sum.Actualizados++
	return true, nil
}

func nullStock(s *float64) sql.NullFloat64 {
	if s == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *s, Valid: true}
}

func nullTime(p catalog.Product) sql.NullTime {
	if p.CreatedAt.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: p.CreatedAt, Valid: true}
}
