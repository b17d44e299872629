//go:build wireinject

package main

import (
	"ai-router/internal/domain"
	"ai-router/internal/infrastructure"
	"ai-router/internal/interfaces"
	"ai-router/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
