package routes

import (
	"ai-router/internal/interfaces/httpserver/handlers/aihandler"
	"ai-router/internal/interfaces/httpserver/handlers/usagehandler"
	"ai-router/internal/interfaces/httpserver/routes/legacy"
	v1 "ai-router/internal/interfaces/httpserver/routes/v1"
	"ai-router/internal/interfaces/httpserver/routes/v1/ai"
	"ai-router/internal/interfaces/httpserver/routes/v1/usage"

	"github.com/google/wire"
)

var RouteProvider = wire.NewSet(
	// Handlers
	aihandler.NewAIHandler,
	usagehandler.NewUsageHandler,

	// Routes
	v1.NewV1Route,
	ai.NewAIRoute,
	usage.NewUsageRoute,
	legacy.NewLegacyRoute,
)
