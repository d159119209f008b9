package http

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"portfolio-site/internal/bootstrap"
	"portfolio-site/internal/transport/http/handler"
	"portfolio-site/internal/transport/http/middleware"
)

// Route is one entry of the routing table installed by Register.
type Route struct {
	Method   string
	Path     string
	Handlers []gin.HandlerFunc
}

// Routes builds the full routing table for app.
func Routes(app *bootstrap.App) []Route {
	secret := app.Config.App.SecretKey

	pageHandler := handler.NewPageHandler(app.Config.App.Name, app.Logger)
	contactHandler := handler.NewContactHandler(app.Contacts, secret, app.Logger)
	apiHandler := handler.NewAPIHandler(app.Content)
	healthHandler := handler.NewHealthHandler(app)

	return []Route{
		{http.MethodGet, "/", []gin.HandlerFunc{middleware.LoadFlash(secret), pageHandler.Home}},
		{http.MethodPost, "/contact", []gin.HandlerFunc{contactHandler.Submit}},
		{http.MethodGet, "/api/data", []gin.HandlerFunc{apiHandler.Data}},
		{http.MethodGet, "/api/resume", []gin.HandlerFunc{apiHandler.Resume}},
		{http.MethodGet, "/healthz", []gin.HandlerFunc{healthHandler.Check}},
	}
}

// Register installs routes on router.
func Register(router gin.IRoutes, routes []Route) {
	for _, r := range routes {
		router.Handle(r.Method, r.Path, r.Handlers...)
	}
}

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()

	// Panics are logged by pageHandler.Recover, so gin's own writer is muted.
	pageHandler := handler.NewPageHandler(app.Config.App.Name, app.Logger)
	router.Use(
		middleware.RequestLogger(app.Logger),
		gin.CustomRecoveryWithWriter(io.Discard, pageHandler.Recover),
	)

	router.LoadHTMLGlob(filepath.Join(app.Config.Web.TemplatesDir, "*.html"))
	router.Static("/static", app.Config.Web.StaticDir)
	router.NoRoute(pageHandler.NotFound)

	Register(router, Routes(app))
	return router
}
