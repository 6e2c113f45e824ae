package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ferreexpress/card"
	"ferreexpress/rail"
)

type buscarResponse struct {
	Term      string      `json:"term"`
	Productos []card.View `json:"productos"`
	Error     string      `json:"error,omitempty"`
}

// handleBuscar es la búsqueda mientras se escribe. Responde siempre con el
// último resultado confirmado de la sesión: si esta búsqueda quedó vieja,
// el término devuelto es el más nuevo.
func (s *Server) handleBuscar(c *gin.Context) {
	sess := currentSession(c)
	client := s.client.WithSessionToken(sess.Token())

	res := sess.Searcher().Search(c.Request.Context(), client, c.Query("q"))
	out := buscarResponse{Term: res.Term, Productos: card.Views(res.Productos, s.assetsURL)}
	if res.Err != nil {
		out.Error = "No se pudo completar la búsqueda"
	}
	c.JSON(http.StatusOK, out)
}

type railRequest struct {
	rail.Metrics
	Tolerance *float64 `json:"tolerance"`
}

// handleRail recalcula las flechas de una fila con las medidas del navegador.
func (s *Server) handleRail(c *gin.Context) {
	var req railRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid metrics", "details": err.Error()})
		return
	}
	tolerance := float64(rail.DefaultTolerance)
	if req.Tolerance != nil && *req.Tolerance >= 0 {
		tolerance = *req.Tolerance
	}
	c.JSON(http.StatusOK, rail.Evaluate(req.Metrics, tolerance))
}
