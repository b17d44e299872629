package ai

import (
	"ai-router/internal/interfaces/httpserver/handlers/aihandler"

	"github.com/gin-gonic/gin"
)

type AIRoute struct {
	handler *aihandler.AIHandler
}

func NewAIRoute(handler *aihandler.AIHandler) *AIRoute {
	return &AIRoute{handler: handler}
}

func (r *AIRoute) RegisterRouter(router gin.IRouter) {
	aiRouter := router.Group("/ai")
	aiRouter.POST("/route", r.handler.RouteTask)
	aiRouter.GET("/cost-estimate", r.handler.EstimateCost)
	aiRouter.GET("/models", r.handler.ListModels)
	aiRouter.GET("/config/schema", r.handler.ConfigSchema)
}
