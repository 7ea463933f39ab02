package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPPublisher publica eventos numa fila durável; o worker consome.
type AMQPPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	mu    sync.Mutex
}

func declareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	return err
}

func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareQueue(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	// amqp.Channel não é seguro para publicação concorrente
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	return errors.Join(p.ch.Close(), p.conn.Close())
}

// Consumer lê a fila e entrega cada evento com ack manual.
type Consumer struct {
	deliverer *Deliverer
	log       *zap.Logger
}

func NewConsumer(deliverer *Deliverer, log *zap.Logger) *Consumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{deliverer: deliverer, log: log}
}

// Run bloqueia até ctx ser cancelado ou a conexão cair.
func (c *Consumer) Run(ctx context.Context, url, queue string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := declareQueue(ch, queue); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	msgs, err := ch.Consume(
		queue,
		"",
		false, // ack manual
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	c.log.Info("notification consumer listening", zap.String("queue", queue))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("notification channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

// acknowledger isola amqp.Delivery para teste.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	c.process(ctx, d.Body, d.Redelivered, d)
}

// process: JSON inválido e chat ausente são descartados; falha de envio volta
// para a fila uma única vez.
func (c *Consumer) process(ctx context.Context, body []byte, redelivered bool, ack acknowledger) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		c.log.Warn("invalid notification payload", zap.Error(err))
		_ = ack.Nack(false, false)
		return
	}

	err := c.deliverer.Deliver(ctx, ev)
	switch {
	case err == nil, errors.Is(err, ErrNoChat):
		if err := ack.Ack(false); err != nil {
			c.log.Warn("ack failed", zap.Error(err))
		}
	default:
		c.log.Warn("notification delivery failed",
			zap.Uint("appointment_id", ev.AppointmentID),
			zap.Error(err),
		)
		_ = ack.Nack(false, !redelivered)
	}
}
