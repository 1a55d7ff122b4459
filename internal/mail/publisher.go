// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dmaksimov/kritika/internal/platform/constants"
)

// Publisher is an AMQP-backed [Mailer].
//
// It holds a single long-lived connection and channel, declared once at
// startup. Messages are published persistent so they survive a broker
// restart while waiting for the mail worker.
type Publisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	logger     *slog.Logger

	// The channel is not safe for concurrent publishes.
	mu sync.Mutex
}

// NewPublisher dials the broker, declares the durable outbound queue, and
// returns a ready Publisher.
func NewPublisher(amqpURL string, logger *slog.Logger) (*Publisher, error) {
	connection, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("mail: failed to dial broker: %w", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, fmt.Errorf("mail: failed to open channel: %w", err)
	}

	// Idempotent declare. Durable so queued mail survives broker restarts.
	if _, err := channel.QueueDeclare(
		constants.MailQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		_ = channel.Close()
		_ = connection.Close()
		return nil, fmt.Errorf("mail: failed to declare queue: %w", err)
	}

	logger.Info("mail publisher connected", slog.String("queue", constants.MailQueueName))

	return &Publisher{
		connection: connection,
		channel:    channel,
		queueName:  constants.MailQueueName,
		logger:     logger,
	}, nil
}

// Send implements [Mailer] by publishing the message as persistent JSON onto
// the outbound queue.
func (publisher *Publisher) Send(ctx context.Context, message Message) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("mail: failed to marshal message: %w", err)
	}

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	if err := publisher.channel.PublishWithContext(ctx,
		"",                  // default exchange
		publisher.queueName, // routing key = queue name
		false,               // mandatory
		false,               // immediate
		publishing,
	); err != nil {
		return fmt.Errorf("mail: failed to publish: %w", err)
	}

	return nil
}

// Close releases the channel and connection.
func (publisher *Publisher) Close() error {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	if err := publisher.channel.Close(); err != nil {
		_ = publisher.connection.Close()
		return fmt.Errorf("mail: failed to close channel: %w", err)
	}
	if err := publisher.connection.Close(); err != nil {
		return fmt.Errorf("mail: failed to close connection: %w", err)
	}
	return nil
}
