//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/trackboard/trackboard/internal/colors"
	"github.com/trackboard/trackboard/internal/config"
	"github.com/trackboard/trackboard/internal/dashboard"
	"github.com/trackboard/trackboard/internal/loader"
	"github.com/trackboard/trackboard/internal/storage"
	"github.com/trackboard/trackboard/pkg/app"
)

// wire up the dependencies.
func InitializeDependencies() (*dependencies, error) {
	wire.Build(config.NewConfigFromEnv, app.NewInstance, app.ContextFromInstance,
		storage.NewConfigFromEnv, storage.NewSQLite,
		wire.Bind(new(storage.Store), new(*storage.SQLite)),
		NewWatch, loader.NewConfigFromEnv, loader.NewLoader,
		colors.NewConfigFromEnv, colors.NewAssignerFromConfig,
		dashboard.NewConfigFromEnv, NewRefreshTicker, dashboard.NewDashboard,
		newDependencies)
	return &dependencies{}, nil
}
