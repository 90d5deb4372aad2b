package mq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует конверты в fanout-обменник исходящего канала
type Publisher struct {
	chn      *amqp.Channel
	exchange string
}

func NewPublisher(client *Client, exchange string) *Publisher {
	return &Publisher{chn: client.chn, exchange: exchange}
}

func (p *Publisher) Publish(ctx context.Context, msg MailingMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mailing message: %w", err)
	}
	err = p.chn.PublishWithContext(
		ctx,
		p.exchange,
		"", // fanout игнорирует routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.exchange, err)
	}
	return nil
}
