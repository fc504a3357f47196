package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/vbonduro/fishedex/internal/config"
	"github.com/vbonduro/fishedex/internal/db"
	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/logging"
	"github.com/vbonduro/fishedex/internal/photostore"
	"github.com/vbonduro/fishedex/internal/photostore/local"
	"github.com/vbonduro/fishedex/internal/service"
	"github.com/vbonduro/fishedex/internal/store"
	"github.com/vbonduro/fishedex/internal/weather"
	"github.com/vbonduro/fishedex/internal/weather/providers"
	"github.com/vbonduro/fishedex/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	if version, err := db.MigrationVersion(database); err == nil {
		logger.Info("database ready", "path", cfg.DBPath, "schema_version", version)
	}

	photoStg, err := local.NewLocalPhotoStore(cfg.PhotoPath)
	if err != nil {
		logger.Error("failed to initialize photo store", "error", err)
		return
	}

	svc, err := newServices(cfg, database, photoStg, logger)
	if err != nil {
		logger.Error("failed to initialize services", "error", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(svc, cfg.MaxImageBytes, logger)
	if err := server.Run(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newServices(cfg *config.Config, database *sql.DB, blobs photostore.PhotoStore, logger *slog.Logger) (web.Services, error) {
	outingStore := store.NewOutingStore(database)

	images := make(map[domain.ImageKind]*service.ImageService, 3)
	for _, kind := range []domain.ImageKind{domain.CatchImage, domain.SceneryImage, domain.LocationImage} {
		st, err := store.NewImageStore(database, kind)
		if err != nil {
			return web.Services{}, err
		}
		images[kind] = service.NewImageService(st, blobs, logger)
	}

	return web.Services{
		Users:          service.NewUserService(store.NewUserStore(database), logger),
		Locations:      service.NewLocationService(store.NewLocationStore(database), blobs, logger),
		Outings:        service.NewOutingService(outingStore, newWeather(cfg, logger), blobs, logger),
		Catches:        service.NewCatchService(store.NewCatchStore(database), outingStore, blobs, logger),
		Insights:       service.NewInsightService(store.NewInsightStore(database)),
		CatchImages:    images[domain.CatchImage],
		SceneryImages:  images[domain.SceneryImage],
		LocationImages: images[domain.LocationImage],
	}, nil
}

// newWeather picks the forecast source: OpenWeatherMap when a key is
// configured, Open-Meteo otherwise. Past days always use the Open-Meteo archive.
func newWeather(cfg *config.Config, logger *slog.Logger) *weather.Normalizer {
	client := &http.Client{Timeout: cfg.WeatherHTTPTimeout}

	var forecast weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		forecast = providers.NewOpenWeatherProvider(client, cfg.OpenWeatherURL, cfg.OpenWeatherAPIKey)
	} else {
		forecast = providers.NewForecastProvider(client, cfg.WeatherForecastURL)
	}
	historical := providers.NewArchiveProvider(client, cfg.WeatherArchiveURL)

	logger.Info("weather providers configured", "historical", historical.Name(), "forecast", forecast.Name())
	return weather.NewNormalizer(historical, forecast)
}
