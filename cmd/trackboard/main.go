package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/trackboard/trackboard/internal/config"
	"github.com/trackboard/trackboard/internal/dashboard"
	"github.com/trackboard/trackboard/internal/loader"
	"github.com/trackboard/trackboard/internal/storage"
	"github.com/trackboard/trackboard/pkg/app"
	ltime "github.com/trackboard/trackboard/pkg/time"
)

type dependencies struct {
	cfg       *config.Config
	app       *app.Instance
	store     *storage.SQLite
	loader    *loader.Loader
	dashboard *dashboard.Dashboard
}

func newDependencies(app *app.Instance, cfg *config.Config, store *storage.SQLite,
	l *loader.Loader, d *dashboard.Dashboard) *dependencies {
	return &dependencies{
		cfg:       cfg,
		app:       app,
		store:     store,
		loader:    l,
		dashboard: d,
	}
}

// NewWatch provides the wall clock.
func NewWatch() ltime.Watch {
	return ltime.NewWallWatch()
}

// NewRefreshTicker drives the dashboard auto-refresh at the configured
// interval.
func NewRefreshTicker(cfg *dashboard.Config) ltime.Ticker {
	return ltime.NewWallTicker(cfg.AutoRefreshInterval)
}

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetReportCaller(true)
	deps, err := InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	deps.cfg.ApplyLogLevel()

	deps.app.AddCloser(deps.store)
	deps.app.AddCloseFunc(deps.loader.Shutdown)

	deps.dashboard.SetAutoRefresh(deps.cfg.AutoRefresh)
	go func() {
		deps.dashboard.Run(app.ContextFromInstance(deps.app))
		deps.app.Stop(false)
	}()

	deps.app.WaitForFinish()
}
