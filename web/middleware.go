package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ferreexpress/session"
)

const (
	sessionCookie = "fe_session"
	// tokenCookie lo deja el login externo.
	tokenCookie = "fe_token"
	sessionKey  = "session"
)

// sessionMiddleware busca la sesión del visitante o crea una nueva.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *session.Session
		if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
			sess, _ = s.sessions.Get(id)
		}
		token, _ := c.Cookie(tokenCookie)
		if sess == nil {
			sess = s.sessions.Create(token)
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
		} else if token != "" && token != sess.Token() {
			sess.SetToken(token)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
