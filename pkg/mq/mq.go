package mq

import (
	"context"
	"encoding/json"
	"sync"

	applog "matchmaker/pkg/logger"
	eventtypes "matchmaker/pkg/types/eventtype"

	amqp "github.com/rabbitmq/amqp091-go"
)

// event_type 별 메시지 핸들러
type EventHandlerMap map[string]func(data json.RawMessage)

type RabbitMQ struct {
	Conn    *amqp.Connection
	channel *amqp.Channel
	// amqp 채널은 동시 Publish에 안전하지 않음
	mu sync.Mutex
}

// ConnectToRabbitMQ: RabbitMQ 연결 설정
func ConnectToRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to connect to RabbitMQ")
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to open RabbitMQ channel")
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{Conn: conn, channel: ch}, nil
}

func (mq *RabbitMQ) Close() error {
	if err := mq.channel.Close(); err != nil {
		applog.Logger.Warn().Err(err).Msg("Failed to close RabbitMQ channel")
	}
	return mq.Conn.Close()
}

// DeclareExchange: Exchange 생성
func (mq *RabbitMQ) DeclareExchange(name, exchangeType string) error {
	return mq.channel.ExchangeDeclare(
		name,         // exchange name
		exchangeType, // type: topic or fanout
		true,         // durable
		false,        // autoDelete
		false,        // internal
		false,        // noWait
		nil,          // arguments
	)
}

// DeclareQueue: Queue 생성 및 바인딩
func (mq *RabbitMQ) DeclareQueue(queueName, exchangeName, routingKey string) (amqp.Queue, error) {
	queue, err := mq.channel.QueueDeclare(
		queueName, // queue name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // arguments
	)
	if err != nil {
		return queue, err
	}

	// Exchange와 Queue 바인딩
	err = mq.channel.QueueBind(
		queue.Name,   // queue name
		routingKey,   // routing key
		exchangeName, // exchange name
		false,        // noWait
		nil,          // arguments
	)

	return queue, err
}

// PublishMessage: 메시지 발행
func (mq *RabbitMQ) PublishMessage(exchange, routingKey string, body []byte) error {
	mq.mu.Lock()
	defer mq.mu.Unlock()

	return mq.channel.PublishWithContext(
		context.Background(),
		exchange,   // exchange name
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// ConsumeMessages: 메시지 소비, ctx 종료 시 중단
func (mq *RabbitMQ) ConsumeMessages(ctx context.Context, queueName string, handlers EventHandlerMap) error {
	msgs, err := mq.channel.Consume(
		queueName, // queue name
		"",        // consumer
		true,      // autoAck
		false,     // exclusive
		false,     // noLocal
		false,     // noWait
		nil,       // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					applog.Logger.Warn().Str("queue", queueName).Msg("RabbitMQ delivery channel closed")
					return
				}
				Dispatch(handlers, msg.Body)
			}
		}
	}()
	return nil
}

// Dispatch: EventPayload를 해석해 event_type에 맞는 핸들러 호출
func Dispatch(handlers EventHandlerMap, body []byte) {
	var payload eventtypes.EventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to unmarshal event payload")
		return
	}

	handler, ok := handlers[payload.EventType]
	if !ok {
		applog.Logger.Debug().Str("event_type", payload.EventType).Msg("No handler for event type")
		return
	}
	handler(payload.Data)
}
