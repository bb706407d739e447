//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/PedroHSSoares-Dev/portfolio/config"
	"github.com/PedroHSSoares-Dev/portfolio/content"
)

var appSet = wire.NewSet(
	provideDB,
	providePrefs,
	content.Load,
	provideStream,
	newMailer,
	newApp,
)

func initApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(appSet)
	return nil, nil, nil
}
