package mq

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/leogretz2/bp-planner1/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tableCarrier adapts amqp.Table to propagation.TextMapCarrier.
type tableCarrier struct {
	table amqp.Table
}

func (c tableCarrier) Get(key string) string {
	if val, ok := c.table[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
		return fmt.Sprintf("%v", val)
	}
	return ""
}

func (c tableCarrier) Set(key, value string) {
	c.table[key] = value
}

func (c tableCarrier) Keys() []string {
	keys := make([]string, 0, len(c.table))
	for k := range c.table {
		keys = append(keys, k)
	}
	return keys
}

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	ch     channel
	log    *zap.Logger
	tracer trace.Tracer
}

// Dial opens the broker connection. TLS is used when configured or when
// the URL already names amqps.
func Dial(cfg config.RabbitMQConfig) (*amqp.Connection, error) {
	url, useTLS := dialURL(cfg)
	if useTLS {
		return amqp.DialTLS(url, &tls.Config{MinVersion: tls.VersionTLS12})
	}
	return amqp.Dial(url)
}

func dialURL(cfg config.RabbitMQConfig) (string, bool) {
	if !cfg.EnableTLS && !strings.HasPrefix(cfg.URL, "amqps://") {
		return cfg.URL, false
	}
	if strings.HasPrefix(cfg.URL, "amqp://") {
		return "amqps://" + strings.TrimPrefix(cfg.URL, "amqp://"), true
	}
	return cfg.URL, true
}

// NewPublisher opens a channel and declares the durable topic exchange
// notifications are published to.
func NewPublisher(conn *amqp.Connection, exchange string, log *zap.Logger, appName string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	p, err := newPublisher(ch, exchange, log, appName)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

func newPublisher(ch channel, exchange string, log *zap.Logger, appName string) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Publisher{ch: ch, log: log, tracer: otel.Tracer(appName)}, nil
}

func (p *Publisher) Close() error { return p.ch.Close() }

// PublishJSON sends body as a persistent JSON message carrying the caller's
// trace context in its headers.
func (p *Publisher) PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error {
	b, err := sonic.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	ctx, span := p.tracer.Start(ctx, "rabbitmq.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", exchangeName),
			attribute.String("messaging.rabbitmq.routing_key", routingKey),
		))
	defer span.End()

	headers := make(amqp.Table)
	otel.GetTextMapPropagator().Inject(ctx, tableCarrier{table: headers})

	err = p.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
		Headers:      headers,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("publish to %s/%s: %w", exchangeName, routingKey, err)
	}

	span.SetAttributes(attribute.Int("messaging.message.body.size", len(b)))
	p.log.Debug("published message", zap.String("exchange", exchangeName), zap.String("routing_key", routingKey))
	return nil
}
