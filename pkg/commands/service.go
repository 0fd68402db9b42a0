package commands

import (
	"go.uber.org/zap"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/app"
	"tableflip.dev/cinetime/pkg/config"
	"tableflip.dev/cinetime/pkg/logging"
	"tableflip.dev/cinetime/pkg/store"
)

// loadService reads the configuration and opens the service it describes.
// Callers must Close the service.
func loadService() (*app.Service, *config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(settings.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if so.Ephemeral {
		client := api.New(settings.APIURL)
		return app.New(store.NewMemory(), app.Options{Logger: log, Catalog: client, Remote: client}), settings, nil
	}
	svc, err := app.Open(settings, log)
	if err != nil {
		return nil, nil, err
	}
	return svc, settings, nil
}

func loadLogger() *zap.SugaredLogger {
	settings, err := config.Load()
	if err != nil {
		return logging.OrNop(nil)
	}
	log, err := logging.New(settings.LogLevel)
	if err != nil {
		return logging.OrNop(nil)
	}
	return log
}
