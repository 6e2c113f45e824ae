package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ferreexpress/account"
	"ferreexpress/api"
)

type perfilData struct {
	Page
	Errores   account.FieldErrors
	Fuerza    int
	Etiqueta  string
	Guardado  bool
	Error     string
	SinSesion bool
}

func (s *Server) handlePerfil(c *gin.Context) {
	data := perfilData{Page: s.page(c, "Mi perfil"), SinSesion: currentSession(c).Token() == ""}
	data.Guardado = c.Query("ok") == "1"
	c.HTML(http.StatusOK, "perfil.tmpl", data)
}

// handlePassword valida el formulario antes de tocar el backend.
func (s *Server) handlePassword(c *gin.Context) {
	sess := currentSession(c)
	data := perfilData{Page: s.page(c, "Mi perfil")}

	var form account.PasswordForm
	if err := c.ShouldBind(&form); err != nil {
		s.log.Debug().Err(err).Msg("password form bind failed")
		data.Error = "Revisa los datos del formulario"
		c.HTML(http.StatusBadRequest, "perfil.tmpl", data)
		return
	}
	data.Fuerza = account.PasswordStrength(form.Nueva)
	data.Etiqueta = account.StrengthLabel(data.Fuerza)

	if err := form.Validate(); err != nil {
		var fe account.FieldErrors
		if errors.As(err, &fe) {
			data.Errores = fe
		} else {
			data.Error = "Revisa los datos del formulario"
		}
		c.HTML(http.StatusUnprocessableEntity, "perfil.tmpl", data)
		return
	}

	token := sess.Token()
	if token == "" {
		data.SinSesion = true
		c.HTML(http.StatusUnauthorized, "perfil.tmpl", data)
		return
	}

	if err := s.client.WithSessionToken(token).ChangePassword(c.Request.Context(), form.Actual, form.Nueva); err != nil {
		s.log.Warn().Err(err).Msg("change password failed")
		data.Error = api.UserMessage(err, "No se pudo cambiar la contraseña")
		c.HTML(http.StatusBadGateway, "perfil.tmpl", data)
		return
	}
	c.Redirect(http.StatusSeeOther, "/perfil?ok=1")
}
