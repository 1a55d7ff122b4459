// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

// Command mailer is the outbound email worker.
//
// It consumes messages from the durable mail queue and delivers them
// through an SMTP relay. Running it separately from the API keeps slow
// relay round-trips out of the request path: the API only enqueues.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmaksimov/kritika/internal/mail"
	"github.com/dmaksimov/kritika/internal/platform/config"
)

func main() {
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	log := rawLog.With(slog.String("app", "kritika-mailer"))
	slog.SetDefault(log)

	log.Info("[Kritika] mailer_initializing")

	cfg, err := config.Load()
	if err != nil {
		log.Error("startup failure", slog.String("context", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.AMQPURL == "" {
		log.Error("startup failure", slog.String("context", "AMQP_URL is required for the mail worker"))
		os.Exit(1)
	}

	deliverer := mail.NewSMTPDeliverer(cfg.SMTPAddr, cfg.MailFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	consumer := mail.NewConsumer(cfg.AMQPURL, deliverer, log)

	ctx, cancel := context.WithCancel(context.Background())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-quit
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()
	}()

	// Run blocks until the context is cancelled, reconnecting to the
	// broker with backoff on failures.
	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("consumer stopped with error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("mailer stopped cleanly")
}
