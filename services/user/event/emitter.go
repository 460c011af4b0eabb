package event

import (
	"encoding/json"
	"time"

	"matchmaker/pkg/helper"
	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/mq"
	eventtypes "matchmaker/pkg/types/eventtype"
)

type Publisher interface {
	PublishMessage(exchange, routingKey string, body []byte) error
}

type Emitter struct {
	publisher Publisher
	now       func() time.Time
}

func NewEmitter(publisher Publisher) *Emitter {
	return &Emitter{publisher: publisher, now: time.Now}
}

// user_events exchange 선언
func DeclareExchange(mqClient *mq.RabbitMQ) error {
	return mqClient.DeclareExchange(mq.ExchangeUserEvents, mq.ExchangeTypeFanout)
}

func (e *Emitter) PublishUserEvent(eventType string, userID int) error {
	payload := eventtypes.EventPayload{
		EventType: eventType,
		Data: helper.ToJSON(eventtypes.UserEvent{
			UserID:     userID,
			OccurredAt: e.now().UTC(),
		}),
	}

	eventBytes, err := json.Marshal(payload)
	if err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to marshal user event")
		return err
	}

	err = e.publisher.PublishMessage(
		mq.ExchangeUserEvents, // Exchange Name (Fanout 타입)
		"",                    // Routing Key (Fanout은 필요 없음)
		eventBytes,
	)
	if err != nil {
		applog.Logger.Error().Err(err).Str("event_type", eventType).Msg("❌ Failed to publish user event")
		return err
	}

	applog.Logger.Debug().Str("event_type", eventType).Int("user_id", userID).Msg("User event published")
	return nil
}
