package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/pharmacy/conversation/internal/controller"
	"github.com/Alturino/pharmacy/conversation/internal/otel"
	"github.com/Alturino/pharmacy/conversation/internal/service"
	"github.com/Alturino/pharmacy/internal/log"
	"github.com/Alturino/pharmacy/internal/repository"
)

func AttachConversationService(
	c context.Context,
	router *mux.Router,
	queries *repository.Queries,
	cache *redis.Client,
) {
	c, span := otel.Tracer.Start(c, "AttachConversationService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "main AttachConversationService").
		Str(log.KeyProcess, "attaching conversation controller").
		Logger()

	logger.Info().Msg("attaching conversation controller")
	controller.AttachConversationController(router, service.NewConversationService(queries, cache))
	logger.Info().Msg("attached conversation controller")
}
