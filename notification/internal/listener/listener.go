package listener

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	conversationResponse "github.com/Alturino/pharmacy/conversation/pkg/response"
	"github.com/Alturino/pharmacy/internal/constants"
	"github.com/Alturino/pharmacy/internal/event"
	"github.com/Alturino/pharmacy/internal/log"
	"github.com/Alturino/pharmacy/internal/metrics"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/notification/internal/otel"
	orderResponse "github.com/Alturino/pharmacy/order/pkg/response"
)

var Channels = []string{constants.ChannelOrderCreated, constants.ChannelConversationCreated}

type Listener struct {
	cache *redis.Client
}

func NewListener(cache *redis.Client) *Listener {
	return &Listener{cache: cache}
}

// Subscribe returns once redis has confirmed the subscription to every channel.
func (l *Listener) Subscribe(c context.Context) (*redis.PubSub, error) {
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Listener Subscribe").
		Strs(log.KeyChannel, Channels).
		Logger()

	logger.Info().Msg("subscribing")
	pubsub := l.cache.Subscribe(c, Channels...)
	for range Channels {
		if _, err := pubsub.Receive(c); err != nil {
			pubsub.Close()
			err = fmt.Errorf("failed subscribing with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
	}
	logger.Info().Msg("subscribed")
	return pubsub, nil
}

// Run consumes messages until c is cancelled or the subscription is closed.
func (l *Listener) Run(c context.Context, pubsub *redis.PubSub) {
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Listener Run").
		Str(log.KeyProcess, "listening").
		Logger()

	messages := pubsub.Channel()
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stop listening")
			return
		case msg, ok := <-messages:
			if !ok {
				logger.Info().Msg("subscription closed")
				return
			}
			if err := l.Handle(c, msg); err != nil {
				logger.Error().Err(err).Str(log.KeyChannel, msg.Channel).Msg(err.Error())
			}
		}
	}
}

func (l *Listener) Handle(c context.Context, msg *redis.Message) error {
	c, e, err := event.Decode(c, msg.Payload)
	if err != nil {
		return fmt.Errorf("failed decoding event with error=%w", err)
	}
	c, span := otel.Tracer.Start(c, "Listener Handle")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Listener Handle").
		Str(log.KeyChannel, msg.Channel).
		Logger()
	metrics.EventsReceived.WithLabelValues(msg.Channel).Inc()

	switch msg.Channel {
	case constants.ChannelOrderCreated:
		order := orderResponse.Order{}
		if err := json.Unmarshal(e.Payload, &order); err != nil {
			err = fmt.Errorf("failed unmarshalling order with error=%w", err)
			inOtel.RecordError(err, span)
			return err
		}
		logger.Info().
			Str(log.KeyOrderID, order.ID.String()).
			Str(log.KeyTotalAmount, order.TotalAmount.StringFixed(2)).
			Int(log.KeyOrderItems, len(order.Items)).
			Str(log.KeyCustomerName, order.CustomerName).
			Msg("new order received")
	case constants.ChannelConversationCreated:
		conversation := conversationResponse.Conversation{}
		if err := json.Unmarshal(e.Payload, &conversation); err != nil {
			err = fmt.Errorf("failed unmarshalling conversation with error=%w", err)
			inOtel.RecordError(err, span)
			return err
		}
		logger.Info().
			Str(log.KeyConversationID, conversation.ID.String()).
			Str(log.KeyCustomerName, conversation.CustomerName).
			Str(log.KeyMessage, conversation.Message).
			Msg("new contact message received")
	default:
		logger.Warn().Msg("event on unknown channel ignored")
	}
	return nil
}
