package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/pharmacy/conversation/internal/otel"
	"github.com/Alturino/pharmacy/conversation/pkg/request"
	"github.com/Alturino/pharmacy/conversation/pkg/response"
	"github.com/Alturino/pharmacy/internal/constants"
	inErrors "github.com/Alturino/pharmacy/internal/errors"
	"github.com/Alturino/pharmacy/internal/event"
	"github.com/Alturino/pharmacy/internal/log"
	"github.com/Alturino/pharmacy/internal/metrics"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/internal/repository"
)

type ConversationRepository interface {
	InsertConversation(c context.Context, arg repository.InsertConversationParams) (repository.Conversation, error)
	FindConversations(c context.Context) ([]repository.Conversation, error)
	RespondConversation(c context.Context, arg repository.RespondConversationParams) (repository.Conversation, error)
}

type ConversationService struct {
	queries ConversationRepository
	cache   *redis.Client
}

func NewConversationService(queries ConversationRepository, cache *redis.Client) *ConversationService {
	return &ConversationService{queries: queries, cache: cache}
}

func (s *ConversationService) CreateConversation(
	c context.Context,
	param request.CreateConversation,
) (response.Conversation, error) {
	c, span := otel.Tracer.Start(c, "ConversationService CreateConversation")
	defer span.End()

	id := uuid.New()
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ConversationService CreateConversation").
		Str(log.KeyConversationID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting conversation").Logger()
	logger.Trace().Msg("inserting conversation")
	span.AddEvent("inserting conversation")
	row, err := s.queries.InsertConversation(c, repository.InsertConversationParams{
		ID:            id,
		CustomerName:  param.CustomerName,
		CustomerPhone: param.CustomerPhone,
		Message:       param.Message,
		Status:        response.StatusPending,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting conversation with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Conversation{}, err
	}
	metrics.ConversationsCreated.Inc()
	conversation := row.Response()
	logger.Info().Msg("inserted conversation")

	logger = logger.With().Str(log.KeyProcess, "publishing conversation created").Logger()
	c = logger.WithContext(c)
	if err := event.Publish(c, s.cache, constants.ChannelConversationCreated, conversation); err != nil {
		err = fmt.Errorf("failed publishing conversation created with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
	}

	return conversation, nil
}

func (s *ConversationService) FindConversations(c context.Context) ([]response.Conversation, error) {
	c, span := otel.Tracer.Start(c, "ConversationService FindConversations")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ConversationService FindConversations").
		Str(log.KeyProcess, "finding conversations").
		Logger()

	logger.Trace().Msg("finding conversations")
	rows, err := s.queries.FindConversations(c)
	if err != nil {
		err = fmt.Errorf("failed finding conversations with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	conversations := make([]response.Conversation, 0, len(rows))
	for _, row := range rows {
		conversations = append(conversations, row.Response())
	}
	logger.Info().Int(log.KeyConversations, len(conversations)).Msg("found conversations")

	return conversations, nil
}

func (s *ConversationService) RespondConversation(
	c context.Context,
	id uuid.UUID,
	param request.RespondConversation,
) (response.Conversation, error) {
	c, span := otel.Tracer.Start(c, "ConversationService RespondConversation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ConversationService RespondConversation").
		Str(log.KeyConversationID, id.String()).
		Str(log.KeyProcess, "responding conversation").
		Logger()

	logger.Trace().Msg("responding conversation")
	row, err := s.queries.RespondConversation(c, repository.RespondConversationParams{
		ID:       id,
		Response: param.Response,
		Status:   response.StatusResponded,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed responding conversation id=%s with error=%w", id.String(), inErrors.ErrConversationNotFound)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Conversation{}, err
	}
	if err != nil {
		err = fmt.Errorf("failed responding conversation with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Conversation{}, err
	}
	metrics.ConversationsResponded.Inc()
	logger.Info().Msg("responded conversation")

	return row.Response(), nil
}
