package legacy

import (
	"ai-router/internal/interfaces/httpserver/handlers/aihandler"

	"github.com/gin-gonic/gin"
)

// LegacyRoute keeps the single POST /api/ai entry point older clients call.
type LegacyRoute struct {
	handler *aihandler.AIHandler
}

func NewLegacyRoute(handler *aihandler.AIHandler) *LegacyRoute {
	return &LegacyRoute{handler: handler}
}

func (r *LegacyRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/api/ai", r.handler.RouteTask)
}
