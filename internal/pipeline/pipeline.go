package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"chat-insights-go/internal/classifier"
	"chat-insights-go/internal/dataset"
	"chat-insights-go/internal/logger"
	"chat-insights-go/internal/sentiment"
	"chat-insights-go/internal/types"
)

// ColumnStats counts what one backfill pass did.
type ColumnStats struct {
	Column    string `json:"column"`
	Labeled   int    `json:"labeled"`
	Skipped   int    `json:"skipped"`
	Fallbacks int    `json:"fallbacks"`
}

// Report is the outcome of a completed run.
type Report struct {
	RunID      string                 `json:"run_id"`
	Path       string                 `json:"path"`
	Stats      []ColumnStats          `json:"stats"`
	Summary    dataset.DatasetSummary `json:"summary"`
	DurationMs int64                  `json:"duration_ms"`
}

// Backfill runs p over every row missing a value in p.Column. Rows that
// already carry a value are never passed to the labeler. A cancelled context
// aborts the pass instead of storing fallbacks.
func Backfill(ctx context.Context, ds *dataset.Dataset, p Policy, log *logger.Logger) (ColumnStats, error) {
	stats := ColumnStats{Column: p.Column}
	ds.EnsureColumn(p.Column)

	for i := 0; i < ds.Len(); i++ {
		if !ds.Missing(i, p.Column) {
			stats.Skipped++
			continue
		}
		label, err := p.Apply(ctx, ds.Value(i, types.ColChatMessages))
		if err != nil {
			if ctx.Err() != nil {
				return stats, fmt.Errorf("backfill %s aborted at row %d: %w", p.Column, i+1, ctx.Err())
			}
			log.WithError(err).WithFields(logrus.Fields{
				"column":   p.Column,
				"row":      i + 1,
				"fallback": p.Fallback,
			}).Warn("labeling failed, storing fallback")
			stats.Fallbacks++
		}
		ds.Set(i, p.Column, label)
		stats.Labeled++
	}
	return stats, nil
}

// Enricher owns the labeling policies of one run, applied in order.
type Enricher struct {
	policies []Policy
	log      *logger.Logger
}

// NewEnricher wires sentiment, query and customer-state policies in that order.
func NewEnricher(scorer *sentiment.Scorer, query, customer *classifier.Classifier, log *logger.Logger) *Enricher {
	return NewEnricherWithPolicies(log,
		SentimentPolicy(scorer),
		ClassifierPolicy(query),
		ClassifierPolicy(customer),
	)
}

// NewEnricherWithPolicies applies the given policies in order.
func NewEnricherWithPolicies(log *logger.Logger, policies ...Policy) *Enricher {
	return &Enricher{policies: policies, log: log}
}

// Policies returns the run's policies in application order.
func (e *Enricher) Policies() []Policy { return e.policies }

// Enrich backfills every policy column of ds in place.
func (e *Enricher) Enrich(ctx context.Context, ds *dataset.Dataset) ([]ColumnStats, error) {
	var all []ColumnStats
	for _, p := range e.policies {
		start := time.Now()
		stats, err := Backfill(ctx, ds, p, e.log)
		if err != nil {
			return all, err
		}
		e.log.WithFields(logrus.Fields{
			"column":      stats.Column,
			"labeled":     stats.Labeled,
			"skipped":     stats.Skipped,
			"fallbacks":   stats.Fallbacks,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("column backfilled")
		all = append(all, stats)
	}
	return all, nil
}

// Run loads path, backfills it, writes it back in place and prints the label
// distribution to out. Load and persist failures abort the run; on persist
// failure the labels computed in memory are lost.
func (e *Enricher) Run(ctx context.Context, path string, out io.Writer) (Report, error) {
	log, runID := e.log.WithRun()
	log = &logger.Logger{Entry: log.WithField("path", path)}
	start := time.Now()
	report := Report{RunID: runID, Path: path}

	log.Info("loading dataset")
	ds, err := dataset.Load(path)
	if err != nil {
		return report, err
	}
	log.WithField("rows", ds.Len()).Info("dataset loaded")

	run := &Enricher{policies: e.policies, log: log}
	if report.Stats, err = run.Enrich(ctx, ds); err != nil {
		return report, err
	}

	if err := dataset.Persist(ds, path); err != nil {
		return report, err
	}
	log.Info("dataset persisted")

	report.Summary = dataset.Summarize(ds)
	if out != nil {
		if err := report.Summary.Print(out); err != nil {
			return report, fmt.Errorf("print summary: %w", err)
		}
	}
	report.DurationMs = time.Since(start).Milliseconds()
	return report, nil
}
