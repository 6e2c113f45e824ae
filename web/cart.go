package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ferreexpress/api"
	"ferreexpress/session"
)

type carritoData struct {
	Page
	Items []session.CartItem
	Total float64
	Aviso string
}

type addForm struct {
	ID       string `form:"id"`
	Cantidad string `form:"cantidad"`
}

func (s *Server) handleCarrito(c *gin.Context) {
	sess := currentSession(c)
	data := carritoData{
		Page:  s.page(c, "Carrito"),
		Items: sess.Cart(),
		Total: sess.CartTotal(),
	}
	switch c.Query("aviso") {
	case "sin-stock":
		data.Aviso = "El producto no tiene stock disponible"
	case "error":
		data.Aviso = "No se pudo agregar el producto, intenta de nuevo"
	}
	c.HTML(http.StatusOK, "carrito.tmpl", data)
}

// addToCart agrega el producto del formulario. Devuelve el aviso para el
// redirect, vacío si salió bien.
func (s *Server) addToCart(c *gin.Context) string {
	var form addForm
	if err := c.ShouldBind(&form); err != nil || form.ID == "" {
		return "error"
	}
	cantidad, err := strconv.Atoi(form.Cantidad)
	if err != nil || cantidad < 1 {
		cantidad = 1
	}

	p, err := s.client.GetProducto(c.Request.Context(), form.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("id", form.ID).Msg("add to cart failed")
		if api.IsNotFound(err) {
			return "sin-stock"
		}
		return "error"
	}
	if !p.Disponible() {
		return "sin-stock"
	}
	currentSession(c).AddToCart(p, cantidad)
	return ""
}

func (s *Server) handleAgregar(c *gin.Context) {
	if aviso := s.addToCart(c); aviso != "" {
		c.Redirect(http.StatusSeeOther, "/carrito?aviso="+aviso)
		return
	}
	c.Redirect(http.StatusSeeOther, "/carrito")
}

// handleComprar agrega y pasa al checkout externo.
func (s *Server) handleComprar(c *gin.Context) {
	if aviso := s.addToCart(c); aviso != "" {
		c.Redirect(http.StatusSeeOther, "/carrito?aviso="+aviso)
		return
	}
	c.Redirect(http.StatusSeeOther, s.checkoutURL)
}
