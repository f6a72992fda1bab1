package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"chat-insights-go/internal/classifier"
	"chat-insights-go/internal/config"
	"chat-insights-go/internal/httpapi"
	"chat-insights-go/internal/logger"
	"chat-insights-go/internal/pipeline"
	"chat-insights-go/internal/sentiment"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "chat-insights-api").Info("starting service")

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

	log.WithField("dataset_path", cfg.DatasetPath).Info("serving dataset insights")
	mux := httpapi.NewMux(cfg.DatasetPath, cfg.RecentLimit, enricher, log)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
