package web

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"ferreexpress/api"
	"ferreexpress/card"
	"ferreexpress/catalog"
)

const (
	msgProductos = "No se pudieron cargar los productos"
	msgNovedades = "No se pudieron cargar las novedades"
	msgProducto  = "No se pudo cargar el producto"
	msgImagenes  = "No se pudieron cargar las imágenes"
)

func (s *Server) page(c *gin.Context, title string) Page {
	return Page{Title: title, CartCount: currentSession(c).CartCount()}
}

func retryToast(c *gin.Context, err error, fallback string) Toast {
	return Toast{Message: api.UserMessage(err, fallback), RetryURL: c.Request.URL.RequestURI()}
}

func railID(label string) string {
	return "rail-" + strings.ReplaceAll(catalog.SearchKey(label), "+", "-")
}

/* ================= HOME ================= */

type homeData struct {
	Page
	Novedades  RailView
	Categorias []RailView
}

// handleHome carga novedades y catálogo en paralelo; cada carga tiene su
// propio error y su propio aviso.
func (s *Server) handleHome(c *gin.Context) {
	ctx := c.Request.Context()
	data := homeData{Page: s.page(c, "FerreExpress")}

	var (
		wg        sync.WaitGroup
		novedades []catalog.Product
		novErr    error
		products  []catalog.Product
		catErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		novedades, novErr = s.client.ListProductos(ctx, 1, catalog.DefaultRecentLimit)
	}()
	go func() {
		defer wg.Done()
		products, catErr = s.loader.Load(ctx)
	}()
	wg.Wait()

	if novErr != nil {
		s.log.Warn().Err(novErr).Msg("novedades load failed")
		data.AddToast(retryToast(c, novErr, msgNovedades))
	}
	if catErr != nil {
		data.AddToast(retryToast(c, catErr, msgProductos))
	}

	data.Novedades = buildRail("rail-novedades", "Novedades", catalog.Recent(novedades, catalog.DefaultRecentLimit), false, s.assetsURL, homeStep)
	for _, b := range catalog.Group(products) {
		rv := buildRail(railID(b.Label), b.Label, b.Products, false, s.assetsURL, homeStep)
		rv.MoreURL = "/catalogo?categoria=" + url.QueryEscape(b.Label)
		data.Categorias = append(data.Categorias, rv)
	}

	c.HTML(http.StatusOK, "home.tmpl", data)
}

/* ================= CATÁLOGO ================= */

type catalogoData struct {
	Page
	Query     string
	Tabs      []catalogoTab
	Rail      RailView
	Resultado int
}

type catalogoTab struct {
	Label  string
	URL    string
	Active bool
	Count  int
}

func (s *Server) handleCatalogo(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	selected := c.Query("categoria")
	data := catalogoData{Page: s.page(c, "Catálogo"), Query: query}

	products, err := s.loader.Load(c.Request.Context())
	if err != nil {
		data.AddToast(retryToast(c, err, msgProductos))
	}

	filtered := catalog.Filter(products, query)
	data.Resultado = len(filtered)
	buckets := catalog.Group(filtered)

	active, ok := catalog.Find(buckets, selected)
	if !ok && len(buckets) > 0 {
		active = buckets[0]
	}

	for _, b := range buckets {
		v := url.Values{}
		v.Set("categoria", b.Label)
		if query != "" {
			v.Set("q", query)
		}
		data.Tabs = append(data.Tabs, catalogoTab{
			Label:  b.Label,
			URL:    "/catalogo?" + v.Encode(),
			Active: b.Label == active.Label,
			Count:  len(b.Products),
		})
	}

	data.Rail = buildRail("rail-catalogo", active.Label, active.Products, false, s.assetsURL, catalogStep)
	c.HTML(http.StatusOK, "catalogo.tmpl", data)
}

/* ================= DETALLE ================= */

type productoData struct {
	Page
	Producto     *card.View
	Categoria    string
	Imagenes     []string
	Relacionados RailView
	NotFound     bool
}

func (s *Server) handleProducto(c *gin.Context) {
	ctx := c.Request.Context()
	data := productoData{Page: s.page(c, "Producto")}

	p, err := s.client.GetProducto(ctx, c.Param("id"))
	if err != nil {
		status := http.StatusBadGateway
		if api.IsNotFound(err) {
			status = http.StatusNotFound
			data.NotFound = true
		} else {
			s.log.Warn().Err(err).Str("id", c.Param("id")).Msg("producto load failed")
			data.AddToast(retryToast(c, err, msgProducto))
		}
		c.HTML(status, "producto.tmpl", data)
		return
	}

	view := card.FromProduct(p, s.assetsURL)
	data.Producto = &view
	data.Title = p.Nombre
	data.Categoria = catalog.Classify(p)

	// imágenes y relacionados dependen del producto, no entre sí
	var (
		wg       sync.WaitGroup
		imagenes []api.Imagen
		imgErr   error
		products []catalog.Product
		catErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		imagenes, imgErr = s.client.GetImagenes(ctx, p.ID)
	}()
	go func() {
		defer wg.Done()
		products, catErr = s.loader.Load(ctx)
	}()
	wg.Wait()

	data.Imagenes = []string{view.Imagen}
	if imgErr != nil {
		s.log.Warn().Err(imgErr).Str("id", p.ID).Msg("imagenes load failed")
		data.AddToast(Toast{Message: msgImagenes})
	}
	for _, img := range imagenes {
		if u := catalog.ResolveImage(s.assetsURL, img.URL); u != "" && u != view.Imagen {
			data.Imagenes = append(data.Imagenes, u)
		}
	}

	if catErr != nil {
		data.AddToast(retryToast(c, catErr, msgProductos))
	}
	var related []catalog.Product
	for _, other := range products {
		if other.ID != p.ID && catalog.Classify(other) == data.Categoria {
			related = append(related, other)
		}
	}
	if b := catalog.Group(related); len(b) == 1 {
		related = b[0].Products
	}
	data.Relacionados = buildRail("rail-relacionados", "También en "+data.Categoria, related, false, s.assetsURL, detailStep)

	c.HTML(http.StatusOK, "producto.tmpl", data)
}
