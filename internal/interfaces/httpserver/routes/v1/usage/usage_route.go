package usage

import (
	"ai-router/internal/interfaces/httpserver/handlers/usagehandler"

	"github.com/gin-gonic/gin"
)

type UsageRoute struct {
	handler *usagehandler.UsageHandler
}

func NewUsageRoute(handler *usagehandler.UsageHandler) *UsageRoute {
	return &UsageRoute{handler: handler}
}

func (r *UsageRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/ai/usage", r.handler.GetUsage)
}
