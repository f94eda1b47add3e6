package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"careerpath/internal/config"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/mailer"
	"careerpath/internal/rabbitmq"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoadMailer()
	log := sl.New(cfg.Env)

	log.Info("Starting mailer", slog.String("env", cfg.Env), slog.String("queue", cfg.RabbitMQ.QueueName))

	if err := run(ctx, cfg, log); err != nil {
		log.Error("mailer stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("mailer gracefully stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	r, err := rabbitmq.New(&cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer r.Close()

	m := mailer.New(&cfg.Mail)

	log.Info("consumer successfully started")

	return r.StartReading(ctx, m.Deliveries(log))
}
