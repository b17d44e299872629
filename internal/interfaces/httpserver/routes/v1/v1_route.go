package v1

import (
	"net/http"
	"time"

	"ai-router/internal/config"
	"ai-router/internal/interfaces/httpserver/routes/v1/ai"
	"ai-router/internal/interfaces/httpserver/routes/v1/usage"

	"github.com/gin-gonic/gin"
)

type V1Route struct {
	ai    *ai.AIRoute
	usage *usage.UsageRoute
}

func NewV1Route(ai *ai.AIRoute, usage *usage.UsageRoute) *V1Route {
	return &V1Route{ai, usage}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	v1Route.ai.RegisterRouter(v1Router)
	v1Route.usage.RegisterRouter(v1Router)
}

// GetVersion godoc
// @Summary Get API build version
// @Description Returns the current build version of the router and environment reload timestamp.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Version information including version number and environment reload timestamp"
// @Router /v1/version [get]
func GetVersion(c *gin.Context) {
	reloadedAt := ""
	if cfg := config.GetGlobal(); cfg != nil && !cfg.EnvReloadedAt.IsZero() {
		reloadedAt = cfg.EnvReloadedAt.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": reloadedAt,
	})
}
