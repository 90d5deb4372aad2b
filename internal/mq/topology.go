package mq

import (
	"fmt"
	"time"

	"github.com/mustakimov/vkbot/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Client держит соединение с брокером и объявляет топологию каналов.
//
// Каждый логический канал устроен одинаково: fanout-обменник кормит
// основную durable-очередь, её dead-letter уходит в direct retry-обменник,
// retry-очередь держит сообщение RetryLifetime и возвращает его обратно
// в основной обменник. Получается передоставка с фиксированной задержкой
// без отдельного планировщика ретраев.
type Client struct {
	conn *amqp.Connection
	chn  *amqp.Channel
}

func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	chn, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Client{conn: conn, chn: chn}, nil
}

func (c *Client) Close() error {
	if err := c.chn.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}

// DeclareTopology объявляет все три канала: bot, human и message_status
func (c *Client) DeclareTopology(cfg config.MessagingConfig) error {
	for _, opts := range []config.QueueOptions{cfg.Bot, cfg.Human, cfg.Status} {
		if err := c.declareChannel(opts); err != nil {
			return fmt.Errorf("declare channel %s: %w", opts.MainQueue, err)
		}
	}
	return nil
}

func (c *Client) declareChannel(opts config.QueueOptions) error {
	if err := c.chn.ExchangeDeclare(opts.MainQueue, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return err
	}
	if err := c.chn.ExchangeDeclare(opts.RetryQueue, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := c.chn.QueueDeclare(opts.MainQueue, true, false, false, false, mainQueueArgs(opts.RetryQueue)); err != nil {
		return err
	}
	if _, err := c.chn.QueueDeclare(opts.RetryQueue, true, false, false, false, retryQueueArgs(opts.MainQueue, opts.RetryLifetime)); err != nil {
		return err
	}
	if err := c.chn.QueueBind(opts.MainQueue, "", opts.MainQueue, false, nil); err != nil {
		return err
	}
	return c.chn.QueueBind(opts.RetryQueue, "", opts.RetryQueue, false, nil)
}

func mainQueueArgs(retryExchange string) amqp.Table {
	return amqp.Table{"x-dead-letter-exchange": retryExchange}
}

func retryQueueArgs(mainExchange string, lifetime time.Duration) amqp.Table {
	return amqp.Table{
		"x-dead-letter-exchange": mainExchange,
		"x-message-ttl":          lifetime.Milliseconds(),
	}
}
