package event

import (
	"context"

	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/mq"
	eventtypes "matchmaker/pkg/types/eventtype"
)

type Consumer struct {
	mqClient     *mq.RabbitMQ
	eventHandler *EventHandler
}

func NewConsumer(mqClient *mq.RabbitMQ, store LogStore) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(store),
	}
}

func (c *Consumer) StartListening(ctx context.Context) error {
	// Exchange 설정
	if err := c.mqClient.DeclareExchange(applog.ExchangeLog, mq.ExchangeTypeFanout); err != nil {
		applog.Logger.Error().Err(err).Str("exchange", applog.ExchangeLog).Msg("❌ Failed to declare exchange")
		return err
	}

	// Queue 생성 및 바인딩
	queue, err := c.mqClient.DeclareQueue(mq.QueueLog, applog.ExchangeLog, "")
	if err != nil {
		applog.Logger.Error().Err(err).Str("queue", mq.QueueLog).Msg("❌ Failed to declare queue")
		return err
	}

	handlers := mq.EventHandlerMap{
		eventtypes.EventTypeLog: c.eventHandler.HandleLogEvent,
	}
	if err := c.mqClient.ConsumeMessages(ctx, queue.Name, handlers); err != nil {
		return err
	}

	applog.Logger.Info().Msg("✅ Logger Service Consumer Listening...")
	return nil
}
