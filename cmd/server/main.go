package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"quote-intake-service/internal/adapters/cache"
	"quote-intake-service/internal/adapters/geocoding"
	"quote-intake-service/internal/adapters/repositories"
	"quote-intake-service/internal/adapters/storage"
	"quote-intake-service/internal/api"
	"quote-intake-service/internal/config"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/platform/db"
	"quote-intake-service/internal/platform/obs"
	"quote-intake-service/internal/ports"
	"quote-intake-service/internal/services"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, S3, Nominatim) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	obs.InitLogger(cfg.LogLevel, cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer sqlDB.Close()

	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}

	geocoder, err := newGeocoder(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("geocoder")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	// Geocoding still works without Redis, just uncached.
	var geoCache ports.GeocodeCache
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, geocode cache disabled")
	} else {
		geoCache = cache.NewRedisGeocodeCache(rdb, cfg.GeocodeTTL)
	}
	cancel()

	blobs, err := storage.NewS3BlobStore(ctx, storage.S3Options{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object storage")
	}

	auth, err := services.NewAdminAuth(cfg.AdminPasswordHash, cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("admin auth")
	}

	business := domain.Position{Lat: cfg.BusinessLat, Lon: cfg.BusinessLon}
	if !business.Valid() {
		log.Fatal().Str("business", business.String()).Msg("business location out of range")
	}

	settings := services.NewSettingsService(repositories.NewPostgresSettingsRepository(sqlDB))
	if err := settings.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("load settings")
	}

	router := api.NewRouter(api.Deps{
		Geocode:           services.NewGeocodeService(geocoder, geoCache),
		Quotes:            services.NewQuoteService(repositories.NewPostgresQuoteRepository(sqlDB), business),
		Gallery:           services.NewGalleryService(repositories.NewPostgresGalleryRepository(sqlDB), blobs),
		Settings:          settings,
		Auth:              auth,
		AllowedOrigins:    cfg.AllowedOrigins(),
		RequestsPerMinute: cfg.MaxRequestsPerMin,
		MaxUploadBytes:    cfg.MaxUploadBytes,
	})

	// Write timeout leaves room for gallery uploads and cold geocode lookups.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}

func newGeocoder(cfg *config.Config) (ports.Geocoder, error) {
	switch strings.ToLower(cfg.Geocoder) {
	case "mock":
		log.Warn().Msg("using mock geocoder")
		return geocoding.NewMockGeocoder(devPlaces(cfg)), nil
	case "", "nominatim":
		return geocoding.NewNominatim(cfg.NominatimURL, cfg.NominatimUserAgent)
	default:
		return nil, errors.New("unknown GEOCODER " + cfg.Geocoder + " (want nominatim or mock)")
	}
}

// devPlaces lets the mock geocoder resolve the business itself plus one nearby demo shop.
func devPlaces(cfg *config.Config) []geocoding.MockPlace {
	return []geocoding.MockPlace{
		{
			Query:   "business",
			Address: "Business premises",
			Pos:     domain.Position{Lat: cfg.BusinessLat, Lon: cfg.BusinessLon},
		},
		{
			Query:   "123 Main St",
			Address: "123 Main St",
			Pos:     domain.Position{Lat: cfg.BusinessLat, Lon: cfg.BusinessLon + 0.09},
		},
	}
}
