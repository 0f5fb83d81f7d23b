package cmd

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/pharmacy/internal/config"
	"github.com/Alturino/pharmacy/internal/log"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/internal/repository"
	"github.com/Alturino/pharmacy/product/internal/controller"
	"github.com/Alturino/pharmacy/product/internal/otel"
	"github.com/Alturino/pharmacy/product/internal/service"
)

// AttachProductService seeds the sample catalog when the products table is empty and
// registers the product and category routes on router.
func AttachProductService(
	c context.Context,
	router *mux.Router,
	queries *repository.Queries,
	cache *redis.Client,
	cacheConfig config.Cache,
) error {
	c, span := otel.Tracer.Start(c, "AttachProductService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "main AttachProductService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing product service").Logger()
	logger.Info().Msg("initializing product service")
	productService := service.NewProductService(queries, cache, cacheConfig.TTL)
	logger.Info().Msg("initialized product service")

	logger = logger.With().Str(log.KeyProcess, "seeding products").Logger()
	logger.Info().Msg("seeding products")
	c = logger.WithContext(c)
	inserted, err := productService.SeedProducts(c, service.SampleProducts)
	if err != nil {
		err = fmt.Errorf("failed seeding products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Int(log.KeyProducts, inserted).Msg("seeded products")

	logger = logger.With().Str(log.KeyProcess, "attaching product controller").Logger()
	logger.Info().Msg("attaching product controller")
	controller.AttachProductController(router, productService)
	logger.Info().Msg("attached product controller")

	return nil
}
