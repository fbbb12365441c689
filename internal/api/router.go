package api

import (
	"quote-intake-service/internal/api/handlers"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const defaultMaxUploadBytes = 10 << 20

// AdminAuth issues and verifies admin tokens.
type AdminAuth interface {
	handlers.AdminLoginService
	TokenVerifier
}

// Deps are the services the HTTP layer talks to.
type Deps struct {
	Geocode  handlers.GeocodeService
	Quotes   handlers.QuoteService
	Gallery  handlers.GalleryService
	Settings handlers.SettingsService
	Auth     AdminAuth

	AllowedOrigins    []string
	RequestsPerMinute int
	MaxUploadBytes    int64
}

// NewRouter wires HTTP handlers with their dependencies and returns the gin engine.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), recovery(), accessLog(), cors.New(corsConfig(d.AllowedOrigins)))

	maxUpload := d.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	r.MaxMultipartMemory = maxUpload

	geocode := &handlers.GeocodeHandler{Svc: d.Geocode}
	quotes := &handlers.QuoteHandler{Svc: d.Quotes}
	gallery := &handlers.GalleryHandler{Svc: d.Gallery, MaxUploadBytes: maxUpload}
	settings := &handlers.SettingsHandler{Svc: d.Settings}
	admin := &handlers.AdminHandler{Auth: d.Auth}

	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		limited := api.Group("", rateLimit(d.RequestsPerMinute))
		limited.GET("/geocode", geocode.Forward)
		limited.GET("/reverse-geocode", geocode.Reverse)
		limited.POST("/quotes", quotes.Create)
		limited.POST("/admin/login", admin.Login)

		api.GET("/gallery", gallery.List)
		api.GET("/gallery/image/*key", gallery.Image)
		api.GET("/settings", settings.Get)

		protected := api.Group("", requireAdmin(d.Auth))
		protected.GET("/quotes", quotes.List)
		protected.GET("/quotes/:id", quotes.Get)
		protected.POST("/gallery/upload", gallery.Upload)
		protected.DELETE("/gallery/:id", gallery.Delete)
		protected.PUT("/settings", settings.Update)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader, "ETag"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
