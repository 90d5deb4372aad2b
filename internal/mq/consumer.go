package mq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// ReplyHandler получает текст входящего сообщения и платформенный id отправителя
type ReplyHandler func(ctx context.Context, text string, fromID int64) error

// Consumer читает входящий канал от людей и передает сообщения обработчику.
// Успешный возврат подтверждает сообщение; ошибка отправляет его в
// dead-letter цикл (retry-очередь вернет его через RetryLifetime).
// Цикл ограничен: после maxDeliveries доставок сообщение подтверждается
// и логируется как мертвое, чтобы не крутиться вечно.
type Consumer struct {
	chn           *amqp.Channel
	queue         string
	maxDeliveries int64
	handler       ReplyHandler
	log           zerolog.Logger
}

func NewConsumer(client *Client, queue string, maxDeliveries int, handler ReplyHandler, log zerolog.Logger) *Consumer {
	return &Consumer{
		chn:           client.chn,
		queue:         queue,
		maxDeliveries: int64(maxDeliveries),
		handler:       handler,
		log:           log.With().Str("queue", queue).Logger(),
	}
}

// Start запускает потребление до отмены контекста
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.chn.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				c.process(ctx, d)
			}
		}
	}()
	return nil
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery) {
	var msg HumanMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		// Нечитаемое сообщение передоставлять бессмысленно
		c.log.Error().Err(err).Msg("drop undecodable message")
		_ = d.Ack(false)
		return
	}

	if err := c.handler(ctx, msg.Text, msg.FromID); err != nil {
		if deathCount(d) >= c.maxDeliveries {
			c.log.Error().Err(err).Int64("from_id", msg.FromID).
				Msg("message exceeded max deliveries, dropping")
			_ = d.Ack(false)
			return
		}
		c.log.Warn().Err(err).Int64("from_id", msg.FromID).Msg("handler failed, requeue via retry loop")
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

// deathCount извлекает число прохождений через dead-letter из заголовка x-death
func deathCount(d amqp.Delivery) int64 {
	deaths, ok := d.Headers["x-death"].([]interface{})
	if !ok {
		return 0
	}
	var total int64
	for _, raw := range deaths {
		entry, ok := raw.(amqp.Table)
		if !ok {
			continue
		}
		if n, ok := entry["count"].(int64); ok {
			total += n
		}
	}
	return total
}
