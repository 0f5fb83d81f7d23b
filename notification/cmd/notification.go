package cmd

import (
	"context"
	"fmt"

	"github.com/Alturino/pharmacy/internal/config"
	"github.com/Alturino/pharmacy/internal/constants"
	"github.com/Alturino/pharmacy/internal/infra"
	"github.com/Alturino/pharmacy/internal/log"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/notification/internal/listener"
	"github.com/Alturino/pharmacy/notification/internal/otel"
)

func RunNotificationService(c context.Context) {
	cfg := config.Get(c, constants.AppNotificationService)

	logger := log.Get(cfg.Application.LogPath, cfg.Application.Env).
		With().
		Str(log.KeyAppName, constants.AppNotificationService).
		Str(log.KeyTag, "main RunNotificationService").
		Logger()
	c = logger.WithContext(c)

	c, span := otel.Tracer.Start(c, "RunNotificationService")
	defer span.End()

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.AppNotificationService, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		if err := inOtel.ShutdownOtel(context.Background(), shutdownFuncs); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		if err := cache.Close(); err != nil {
			err = fmt.Errorf("failed closing cache with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(log.KeyProcess, "subscribing to events").Logger()
	logger.Info().Msg("subscribing to events")
	c = logger.WithContext(c)
	l := listener.NewListener(cache)
	pubsub, err := l.Subscribe(c)
	if err != nil {
		err = fmt.Errorf("failed subscribing to events with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer pubsub.Close()
	logger.Info().Msg("subscribed to events")

	l.Run(c, pubsub)
	logger.Info().Msg("received interuption signal shutting down")
}
