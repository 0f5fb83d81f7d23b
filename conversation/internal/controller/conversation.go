package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Alturino/pharmacy/conversation/internal/otel"
	"github.com/Alturino/pharmacy/conversation/internal/service"
	"github.com/Alturino/pharmacy/conversation/pkg/request"
	inErrors "github.com/Alturino/pharmacy/internal/errors"
	inHttp "github.com/Alturino/pharmacy/internal/http"
	"github.com/Alturino/pharmacy/internal/log"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/internal/validate"
)

type ConversationController struct {
	service *service.ConversationService
}

func AttachConversationController(router *mux.Router, service *service.ConversationService) {
	controller := ConversationController{service: service}

	router.HandleFunc("/conversations", controller.FindConversations).Methods(http.MethodGet)
	router.HandleFunc("/conversations", controller.CreateConversation).Methods(http.MethodPost)
	router.HandleFunc("/conversations/{conversationId}/respond", controller.RespondConversation).
		Methods(http.MethodPut)
}

func (ctrl ConversationController) CreateConversation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ConversationController CreateConversation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ConversationController CreateConversation").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	param := request.CreateConversation{}
	if err := json.NewDecoder(r.Body).Decode(&param); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailedResponse(c, w, http.StatusBadRequest, inErrors.ErrInvalidPayload)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	if err := validate.New().StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailedResponse(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "creating conversation").Logger()
	logger.Trace().Msg("creating conversation")
	c = logger.WithContext(c)
	conversation, err := ctrl.service.CreateConversation(c, param)
	if err != nil {
		err = fmt.Errorf("failed creating conversation with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailedResponse(c, w, http.StatusInternalServerError, err)
		return
	}
	logger.Info().Str(log.KeyConversationID, conversation.ID.String()).Msg("created conversation")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":          inHttp.StatusSuccess,
		"statusCode":      http.StatusOK,
		"message":         "Message envoyé avec succès",
		"conversation_id": conversation.ID,
	})
}

func (ctrl ConversationController) FindConversations(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ConversationController FindConversations")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ConversationController FindConversations").
		Str(log.KeyProcess, "finding conversations").
		Logger()

	logger.Trace().Msg("finding conversations")
	c = logger.WithContext(c)
	conversations, err := ctrl.service.FindConversations(c)
	if err != nil {
		err = fmt.Errorf("failed finding conversations with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailedResponse(c, w, http.StatusInternalServerError, err)
		return
	}
	logger.Info().Int(log.KeyConversations, len(conversations)).Msg("found conversations")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":        inHttp.StatusSuccess,
		"statusCode":    http.StatusOK,
		"message":       "conversations found",
		"conversations": conversations,
	})
}

func (ctrl ConversationController) RespondConversation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ConversationController RespondConversation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "ConversationController RespondConversation").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing conversationId").Logger()
	logger.Trace().Msg("parsing conversationId")
	rawID := mux.Vars(r)["conversationId"]
	id, err := uuid.Parse(rawID)
	if err != nil {
		err = fmt.Errorf("failed parsing conversationId=%s with error=%w", rawID, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailedResponse(c, w, http.StatusBadRequest, err)
		return
	}
	span.SetAttributes(attribute.String(log.KeyConversationID, id.String()))
	logger = logger.With().Str(log.KeyConversationID, id.String()).Logger()
	logger.Trace().Msg("parsed conversationId")

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	param := request.RespondConversation{}
	if err := json.NewDecoder(r.Body).Decode(&param); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailedResponse(c, w, http.StatusBadRequest, inErrors.ErrInvalidPayload)
		return
	}
	if err := validate.New().StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailedResponse(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "responding conversation").Logger()
	logger.Trace().Msg("responding conversation")
	c = logger.WithContext(c)
	if _, err := ctrl.service.RespondConversation(c, id, param); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrConversationNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed responding conversation with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailedResponse(c, w, statusCode, err)
		return
	}
	logger.Info().Msg("responded conversation")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "Réponse envoyée avec succès",
	})
}
