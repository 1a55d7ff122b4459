// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dmaksimov/kritika/internal/platform/constants"
)

const (
	// consumerPrefetch bounds unacknowledged deliveries per worker.
	consumerPrefetch = 25

	// reconnectBaseDelay and reconnectMaxDelay bound the exponential backoff
	// between broker reconnection attempts.
	reconnectBaseDelay = 1 * time.Second
	reconnectMaxDelay  = 30 * time.Second
)

// Consumer drains the outbound mail queue and hands each message to a
// [Deliverer].
//
// # Failure Model
//
// A failed delivery is rejected without requeue: confirmation codes are
// regenerated on every signup attempt, so redelivering a stale code later
// is worse than dropping it. Broker outages are retried with backoff.
type Consumer struct {
	amqpURL   string
	deliverer Deliverer
	logger    *slog.Logger
}

// NewConsumer constructs a queue consumer delivering through deliverer.
func NewConsumer(amqpURL string, deliverer Deliverer, logger *slog.Logger) *Consumer {
	return &Consumer{amqpURL: amqpURL, deliverer: deliverer, logger: logger}
}

// Run connects to the broker and consumes until ctx is cancelled.
// It reconnects with exponential backoff after connection loss.
func (consumer *Consumer) Run(ctx context.Context) error {
	backoff := reconnectBaseDelay

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		connection, err := amqp.Dial(consumer.amqpURL)
		if err != nil {
			consumer.logger.Error("mail consumer dial failed",
				slog.Any("error", err),
				slog.Duration("retry_in", backoff),
			)
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < reconnectMaxDelay {
				backoff *= 2
			}
			continue
		}

		// Reset backoff after a successful connect.
		backoff = reconnectBaseDelay

		if err := consumer.consumeLoop(ctx, connection); err != nil {
			consumer.logger.Error("mail consume loop ended", slog.Any("error", err))
		}
		_ = connection.Close()
	}
}

// consumeLoop declares the queue and processes deliveries until the channel
// closes or ctx is cancelled.
func (consumer *Consumer) consumeLoop(ctx context.Context, connection *amqp.Connection) error {
	channel, err := connection.Channel()
	if err != nil {
		return fmt.Errorf("mail: channel open: %w", err)
	}
	defer func() { _ = channel.Close() }()

	if err := channel.Qos(consumerPrefetch, 0, false); err != nil {
		return fmt.Errorf("mail: set QoS: %w", err)
	}

	if _, err := channel.QueueDeclare(constants.MailQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("mail: queue declare: %w", err)
	}

	deliveries, err := channel.Consume(constants.MailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("mail: consume: %w", err)
	}

	consumer.logger.Info("mail consumer started", slog.String("queue", constants.MailQueueName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case delivery, open := <-deliveries:
			if !open {
				return fmt.Errorf("mail: delivery channel closed")
			}
			consumer.handleDelivery(delivery)
		}
	}
}

// handleDelivery decodes and delivers one queued message.
func (consumer *Consumer) handleDelivery(delivery amqp.Delivery) {
	var message Message
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		consumer.logger.Error("mail message malformed", slog.Any("error", err))
		_ = delivery.Reject(false)
		return
	}

	if err := consumer.deliverer.Deliver(message); err != nil {
		consumer.logger.Error("mail delivery failed",
			slog.String("to", message.To),
			slog.Any("error", err),
		)
		_ = delivery.Reject(false)
		return
	}

	consumer.logger.Info("mail delivered", slog.String("to", message.To))
	_ = delivery.Ack(false)
}

// sleepCtx sleeps for d, returning false if ctx is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
