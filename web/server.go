// Package web sirve las páginas del storefront y la API JSON del navegador.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ferreexpress/api"
	"ferreexpress/catalog"
	"ferreexpress/logger"
	"ferreexpress/session"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Deps son las dependencias del servidor.
type Deps struct {
	Client      *api.Client
	Loader      *CatalogLoader
	Sessions    *session.Store
	AssetsURL   string
	CheckoutURL string
	CORSOrigins []string
	Log         zerolog.Logger
}

// Server es el storefront.
type Server struct {
	client      *api.Client
	loader      *CatalogLoader
	sessions    *session.Store
	assetsURL   string
	checkoutURL string
	log         zerolog.Logger
	router      *gin.Engine
}

// NewServer arma el router con todas las rutas.
func NewServer(d Deps) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), logger.Gin(d.Log))

	s := &Server{
		client:      d.Client,
		loader:      d.Loader,
		sessions:    d.Sessions,
		assetsURL:   d.AssetsURL,
		checkoutURL: d.CheckoutURL,
		log:         d.Log,
		router:      router,
	}
	if s.checkoutURL == "" {
		s.checkoutURL = "/carrito"
	}

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"cop": catalog.FormatCOP,
	}).ParseFS(templatesFS, "templates/*.tmpl"))
	router.SetHTMLTemplate(tmpl)

	static, _ := fs.Sub(staticFS, "static")
	router.StaticFS("/static", http.FS(static))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	pages := router.Group("/")
	pages.Use(s.sessionMiddleware())
	{
		pages.GET("/", s.handleHome)
		pages.GET("/catalogo", s.handleCatalogo)
		pages.GET("/producto/:id", s.handleProducto)
		pages.GET("/carrito", s.handleCarrito)
		pages.POST("/carrito", s.handleAgregar)
		pages.POST("/comprar", s.handleComprar)
		pages.GET("/perfil", s.handlePerfil)
		pages.POST("/perfil/password", s.handlePassword)
	}

	apiGroup := router.Group("/api")
	if len(d.CORSOrigins) > 0 {
		apiGroup.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	// /api/rail no usa sesión: el navegador lo llama en cada scroll
	apiGroup.GET("/buscar", s.sessionMiddleware(), s.handleBuscar)
	apiGroup.POST("/rail", s.handleRail)

	return s
}

// Handler expone el router (para tests y http.Server).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run arranca el servidor y lo apaga ordenadamente cuando ctx termina.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.log.Info().Str("addr", addr).Msg("storefront listening")

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down storefront")
		return srv.Shutdown(shutdownCtx)
	}
}
