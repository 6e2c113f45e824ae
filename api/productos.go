package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"ferreexpress/catalog"
)

const (
	DefaultPageLimit = 50
	DefaultMaxPages  = 20
)

// ListProductos trae una página del catálogo.
func (c *Client) ListProductos(ctx context.Context, page, limit int) ([]catalog.Product, error) {
	return c.listProductos(ctx, pageQuery(page, limit))
}

// SearchProductos trae una página del catálogo filtrada por el servidor.
func (c *Client) SearchProductos(ctx context.Context, term string, page, limit int) ([]catalog.Product, error) {
	q := pageQuery(page, limit)
	q.Set("search", term)
	return c.listProductos(ctx, q)
}

// FetchAllProductos recorre las páginas hasta encontrar una incompleta o
// llegar a maxPages. Devuelve la concatenación en orden de página.
func (c *Client) FetchAllProductos(ctx context.Context, limit, maxPages int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var all []catalog.Product
	for page := 1; page <= maxPages; page++ {
		// se cuenta la página cruda: un registro descartado no corta el loop
		items, err := c.fetchPage(ctx, pageQuery(page, limit))
		if err != nil {
			return nil, fmt.Errorf("fetch productos page %d: %w", page, err)
		}
		all = append(all, c.validate(items)...)
		if len(items) < limit {
			return all, nil
		}
	}

	c.log.Warn().Int("max_pages", maxPages).Int("limit", limit).Int("productos", len(all)).
		Msg("fetch all productos hit the page cap, catalog may be truncated")
	return all, nil
}

// GetProducto trae un producto por id.
func (c *Client) GetProducto(ctx context.Context, id string) (catalog.Product, error) {
	body, err := c.get(ctx, "/productos/"+url.PathEscape(id), nil)
	if err != nil {
		return catalog.Product{}, err
	}
	w, err := decodeOne(body)
	if err != nil {
		return catalog.Product{}, err
	}
	return w.toProduct()
}

// GetImagenes trae las imágenes adicionales de un producto, en orden.
func (c *Client) GetImagenes(ctx context.Context, id string) ([]Imagen, error) {
	body, err := c.get(ctx, "/productos/"+url.PathEscape(id)+"/imagenes", nil)
	if err != nil {
		return nil, err
	}
	return decodeImagenes(body)
}

// ChangePassword pide al backend el cambio de contraseña del usuario de la sesión.
func (c *Client) ChangePassword(ctx context.Context, actual, nueva string) error {
	_, err := c.send(ctx, http.MethodPut, "/usuarios/me/password", map[string]string{
		"password_actual": actual,
		"password_nueva":  nueva,
	})
	return err
}

func (c *Client) listProductos(ctx context.Context, q url.Values) ([]catalog.Product, error) {
	items, err := c.fetchPage(ctx, q)
	if err != nil {
		return nil, err
	}
	return c.validate(items), nil
}

func (c *Client) fetchPage(ctx context.Context, q url.Values) ([]productoWire, error) {
	body, err := c.get(ctx, "/productos", q)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

// validate descarta los registros mal formados y los deja en el log.
func (c *Client) validate(items []productoWire) []catalog.Product {
	out := make([]catalog.Product, 0, len(items))
	for _, w := range items {
		p, err := w.toProduct()
		if err != nil {
			c.log.Warn().Err(err).Msg("dropping producto")
			continue
		}
		out = append(out, p)
	}
	return out
}

func pageQuery(page, limit int) url.Values {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))
	return q
}
