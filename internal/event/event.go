package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/Alturino/pharmacy/internal/log"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
)

// Event is the envelope written to a redis channel. Carrier holds the propagated trace
// context so the consumer can continue the producer's trace.
type Event struct {
	Channel    string            `json:"channel"`
	RequestID  string            `json:"request_id,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Carrier    map[string]string `json:"carrier,omitempty"`
	Payload    json.RawMessage   `json:"payload"`
}

func Publish(c context.Context, client *redis.Client, channel string, payload interface{}) error {
	c, span := inOtel.Tracer.Start(c, "event Publish")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "event Publish").
		Str(log.KeyChannel, channel).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "marshalling event").Logger()
	logger.Trace().Msg("marshalling event")
	data, err := json.Marshal(payload)
	if err != nil {
		err = fmt.Errorf("failed marshalling payload with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(c, carrier)
	body, err := json.Marshal(Event{
		Channel:    channel,
		RequestID:  log.RequestIDFromContext(c),
		OccurredAt: time.Now().UTC(),
		Carrier:    carrier,
		Payload:    data,
	})
	if err != nil {
		err = fmt.Errorf("failed marshalling event with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("marshalled event")

	logger = logger.With().Str(log.KeyProcess, "publishing event").Logger()
	logger.Trace().Msg("publishing event")
	if err := client.Publish(c, channel, body).Err(); err != nil {
		err = fmt.Errorf("failed publishing event with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	span.AddEvent("published event")
	logger.Info().Msg("published event")
	return nil
}

// Decode parses an envelope and returns a context carrying the producer's trace.
func Decode(c context.Context, raw string) (context.Context, Event, error) {
	e := Event{}
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return c, Event{}, fmt.Errorf("failed unmarshalling event with error=%w", err)
	}
	if len(e.Carrier) > 0 {
		c = otel.GetTextMapPropagator().Extract(c, propagation.MapCarrier(e.Carrier))
	}
	if e.RequestID != "" {
		c = log.AttachRequestIDToContext(c, e.RequestID)
	}
	return c, e, nil
}
