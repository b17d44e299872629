package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ai-router/internal/config"
	"ai-router/internal/infrastructure"
	middleware "ai-router/internal/interfaces/httpserver/middlewares"
	"ai-router/internal/interfaces/httpserver/routes/legacy"
	v1 "ai-router/internal/interfaces/httpserver/routes/v1"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ai-router/docs/swagger"
)

const readinessTimeout = 2 * time.Second

type HTTPServer struct {
	engine      *gin.Engine
	server      *http.Server
	infra       *infrastructure.Infrastructure
	v1Route     *v1.V1Route
	legacyRoute *legacy.LegacyRoute
	config      *config.Config
}

func (s *HTTPServer) bindSwagger() {
	g := s.engine.Group("/")
	g.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func NewHttpServer(
	v1Route *v1.V1Route,
	legacyRoute *legacy.LegacyRoute,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		engine:      gin.New(),
		infra:       infra,
		v1Route:     v1Route,
		legacyRoute: legacyRoute,
		config:      cfg,
	}
	server.engine.HandleMethodNotAllowed = true
	server.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	server.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	server.engine.GET("/healthz", GetHealthz)
	server.engine.GET("/readyz", server.GetReadyz)

	if cfg.EnableSwagger {
		server.bindSwagger()
	}

	server.v1Route.RegisterRouter(server.engine)
	server.legacyRoute.RegisterRouter(server.engine)
	return &server
}

// Handler exposes the engine, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// GetHealthz godoc
// @Summary Health check endpoint
// @Description Returns the health status of the router. Used by orchestrators and monitoring systems.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Health status OK"
// @Router /healthz [get]
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz godoc
// @Summary Readiness check endpoint
// @Description Reports ready once the model catalog is loaded and, when configured, the usage database answers.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Readiness status ready"
// @Failure 503 {object} map[string]string
// @Router /readyz [get]
func (s *HTTPServer) GetReadyz(c *gin.Context) {
	if s.infra.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		sqlDB, err := s.infra.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": "database unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *HTTPServer) Run() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.HTTPPort),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.infra.Logger.Info().Int("port", s.config.HTTPPort).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
