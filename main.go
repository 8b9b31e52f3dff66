package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"flights/config"
	"flights/gateway"
	"flights/log"
	"flights/pubsub"
	"flights/recovery"
	"flights/service"
	"flights/tracing"
)

func main() {
	log.Init(logrus.InfoLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	traceProvider := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint)
	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Warn("failed to shutdown trace provider")
		}
	}()

	database, err := sqlx.Open("postgres", cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open postgres connection")
	}
	defer database.Close()

	redisClient := pubsub.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()

	aggregatorClient := gateway.NewClient(cfg.AggregatorURL, cfg.AggregatorKey, cfg.Timeouts)
	recoveryStore := recovery.NewRedisStore(redisClient)

	svc := service.New(cfg, database, redisClient, aggregatorClient, recoveryStore)

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("service stopped with error")
	}
}
