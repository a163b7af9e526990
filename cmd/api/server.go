package main

import (
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/jordanlanch/industrycatalog/config"
	_ "github.com/jordanlanch/industrycatalog/docs" // Swagger docs (generated)
	apierrors "github.com/jordanlanch/industrycatalog/pkg/api/errors"
	"github.com/jordanlanch/industrycatalog/pkg/api/handlers"
	"github.com/jordanlanch/industrycatalog/pkg/cache"
	"github.com/jordanlanch/industrycatalog/pkg/database"
	"github.com/jordanlanch/industrycatalog/pkg/industries"
	"github.com/jordanlanch/industrycatalog/pkg/logger"
	"github.com/jordanlanch/industrycatalog/pkg/metrics"
	custommiddleware "github.com/jordanlanch/industrycatalog/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type serverDeps struct {
	cfg         *config.Config
	log         logger.Logger
	store       database.Store
	cache       *cache.Client // nil when caching is disabled
	metrics     *metrics.Metrics
	gatherer    prometheus.Gatherer
	rateLimiter *custommiddleware.RateLimiter
	industries  *industries.Service
	catalog     *industries.CatalogService
}

// newServer wires middleware and routes
func newServer(d serverDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apierrors.HTTPErrorHandler

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency.String()}
			if v.Error != nil {
				d.log.Warn("request failed", append(args, "error", v.Error)...)
				return nil
			}
			d.log.Info("request", args...)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if d.cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	if d.metrics != nil {
		e.Use(d.metrics.Middleware())
	}

	e.Use(middleware.CORSWithConfig(custommiddleware.CORSConfig(d.cfg.CORSAllowedOrigins)))
	e.Use(middleware.Gzip())
	e.Use(custommiddleware.SecurityHeaders(custommiddleware.DefaultSecurityHeadersConfig()))

	if d.rateLimiter != nil {
		e.Use(d.rateLimiter.RateLimitMiddleware())
	}

	// Keep an untyped nil when caching is disabled
	var cachePinger handlers.Pinger
	if d.cache != nil {
		cachePinger = d.cache
	}

	healthHandler := handlers.NewHealthHandler(d.store, cachePinger)
	industryHandler := handlers.NewIndustryHandler(d.industries)
	catalogHandler := handlers.NewCatalogHandler(d.catalog, d.industries.Regions())

	if d.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{})))
	}

	// Swagger UI loads its own inline script and styles
	e.GET("/swagger/*", echoSwagger.WrapHandler, custommiddleware.SecurityHeaders(custommiddleware.SecurityHeadersConfig{
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:",
	}))

	api := e.Group("/api")
	api.GET("/health", healthHandler.Health)

	// Industries
	api.GET("/industries", industryHandler.ListIndustries)
	api.GET("/industries/search", industryHandler.SearchIndustries)
	api.GET("/industries/export", industryHandler.ExportIndustries)
	api.GET("/industries/:id", industryHandler.GetIndustry)
	api.POST("/industries", industryHandler.CreateIndustry)
	api.PUT("/industries/:id", industryHandler.UpdateIndustry)
	api.DELETE("/industries/:id", industryHandler.DeleteIndustry)

	// Catalog
	api.GET("/sectors", catalogHandler.ListSectors)
	api.GET("/sectors/:name", catalogHandler.GetSector)
	api.GET("/countries", catalogHandler.ListCountries)
	api.GET("/countries/:name", catalogHandler.GetCountry)
	api.GET("/regions", catalogHandler.ListRegions)

	return e
}
