package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/pharmacy/internal/log"
	"github.com/Alturino/pharmacy/internal/repository"
	"github.com/Alturino/pharmacy/order/internal/controller"
	"github.com/Alturino/pharmacy/order/internal/otel"
	"github.com/Alturino/pharmacy/order/internal/service"
)

func AttachOrderService(
	c context.Context,
	router *mux.Router,
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) {
	c, span := otel.Tracer.Start(c, "AttachOrderService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "main AttachOrderService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing order service").Logger()
	logger.Info().Msg("initializing order service")
	orderService := service.NewOrderService(pool, queries, cache)
	logger.Info().Msg("initialized order service")

	logger = logger.With().Str(log.KeyProcess, "attaching order controller").Logger()
	logger.Info().Msg("attaching order controller")
	controller.AttachOrderController(router, orderService)
	logger.Info().Msg("attached order controller")
}
