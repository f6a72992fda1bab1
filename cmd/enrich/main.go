package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"chat-insights-go/internal/classifier"
	"chat-insights-go/internal/config"
	"chat-insights-go/internal/logger"
	"chat-insights-go/internal/pipeline"
	"chat-insights-go/internal/sentiment"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "chat-enrich").Info("starting enrichment run")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	completer, err := classifier.NewCompleter(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build llm client")
	}
	query, customer := classifier.NewPair(completer, cfg.StrictLabels)
	enricher := pipeline.NewEnricher(sentiment.NewScorer(), query, customer, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := enricher.Run(ctx, cfg.DatasetPath, os.Stdout)
	if err != nil {
		log.WithError(err).WithField("run_id", report.RunID).Fatal("enrichment run failed")
	}
	log.WithField("run_id", report.RunID).
		WithField("duration_ms", report.DurationMs).
		Info("enrichment run complete")
}
