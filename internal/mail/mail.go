// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

/*
Package mail implements the outbound email transport.

The API process never talks SMTP directly: it publishes messages onto a
durable RabbitMQ queue and returns immediately, keeping email latency and
relay failures out of the request path. A separate worker (cmd/mailer)
consumes the queue and performs the actual SMTP delivery.

Components:

  - Mailer: The interface consumed by domain services (fire-and-forget).
  - Publisher: AMQP-backed Mailer used in production.
  - LogMailer: Development fallback that logs instead of sending.
  - Consumer: The queue-draining delivery loop used by cmd/mailer.
*/
package mail

import (
	"context"
	"log/slog"
)

// Message is a single outbound email, as serialized onto the queue.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer is the transport contract consumed by domain services.
//
// # Delivery Semantics
//
// Send enqueues (or logs) the message and returns. There is no delivery
// confirmation: callers treat a Send error as a logging concern, never as a
// reason to roll back the surrounding operation.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}

// # Development Mailer

// LogMailer writes outbound messages to the structured log instead of
// sending them. Used when no AMQP_URL is configured (local development).
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a [LogMailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements [Mailer] by logging the full message body.
// The body contains the confirmation code, which is exactly what a developer
// needs to complete the signup flow locally.
func (mailer *LogMailer) Send(ctx context.Context, message Message) error {
	mailer.logger.InfoContext(ctx, "mail_logged_instead_of_sent",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("body", message.Body),
	)
	return nil
}
