package event

import (
	"context"

	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/mq"
)

type Consumer struct {
	mqClient     *mq.RabbitMQ
	eventHandler *EventHandler
}

func NewConsumer(mqClient *mq.RabbitMQ, invalidator RankingInvalidator) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(invalidator),
	}
}

func (c *Consumer) StartListening(ctx context.Context) error {
	// Exchange 및 Queue 설정
	if err := c.mqClient.DeclareExchange(mq.ExchangeUserEvents, mq.ExchangeTypeFanout); err != nil {
		applog.Logger.Error().Err(err).Str("exchange", mq.ExchangeUserEvents).Msg("❌ Failed to declare exchange")
		return err
	}

	queue, err := c.mqClient.DeclareQueue(mq.QueueMatch, mq.ExchangeUserEvents, "")
	if err != nil {
		applog.Logger.Error().Err(err).Str("queue", mq.QueueMatch).Msg("❌ Failed to declare queue")
		return err
	}

	if err := c.mqClient.ConsumeMessages(ctx, queue.Name, c.eventHandler.Handlers(ctx)); err != nil {
		applog.Logger.Error().Err(err).Str("queue", queue.Name).Msg("❌ Failed to consume messages")
		return err
	}

	applog.Logger.Info().Str("queue", queue.Name).Msg("✅ RabbitMQ Consumer Listening...")
	return nil
}
