// Package server assembles the HTTP surface: routes, middleware and compression.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/kube-rca/alert-broadcast/internal/config"
	"github.com/kube-rca/alert-broadcast/internal/handler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Deps struct {
	Config  config.ServerConfig
	Log     zerolog.Logger
	Alerts  *handler.AlertHandler
	Health  *handler.HealthHandler
	SPA     *handler.SPAHandler
	Metrics http.Handler
}

// NewRouter registers every route and the middleware chain.
// 매칭되지 않는 요청은 SPA fallback으로 전달
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	// "/api/alerts/"처럼 끝에 슬래시가 붙은 경로도 리다이렉트 없이 바로 처리
	router.RedirectTrailingSlash = false

	router.Use(
		handler.RequestLogger(d.Log),
		handler.ErrorMiddleware(d.Log),
		handler.SecurityHeaders(),
		handler.CORSMiddleware(d.Config.AllowedOrigins, false),
		handler.BodyLimit(d.Config.MaxBodyBytes),
	)

	api := router.Group("/api")
	{
		handleWithSlash(api, http.MethodPost, "/alerts", d.Alerts.PublishAlert)
		handleWithSlash(api, http.MethodGet, "/health", d.Health.Health)
		api.GET("/openapi.json", handler.OpenAPIDoc)
	}

	metricsHandler := d.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	router.GET("/metrics", gin.WrapH(metricsHandler))

	router.NoRoute(d.SPA.Fallback)

	return router
}

// handleWithSlash registers path both with and without a trailing slash.
func handleWithSlash(group *gin.RouterGroup, method, path string, h gin.HandlerFunc) {
	group.Handle(method, path, h)
	group.Handle(method, path+"/", h)
}

// NewHandler wraps the router with gzip response compression.
func NewHandler(d Deps) http.Handler {
	return gzhttp.GzipHandler(NewRouter(d))
}
