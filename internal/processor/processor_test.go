package processor

import (
	"context"
	"errors"
	"testing"

	"chat-insights-go/internal/classifier"
	"chat-insights-go/internal/logger"
	"chat-insights-go/internal/pipeline"
	"chat-insights-go/internal/sentiment"
	"chat-insights-go/internal/types"
)

type errCompleter struct{}

func (errCompleter) Complete(context.Context, string, string) (string, error) {
	return "", errors.New("gateway down")
}

func enricher(c classifier.Completer) *pipeline.Enricher {
	q, cust := classifier.NewPair(c, false)
	return pipeline.NewEnricher(sentiment.NewScorer(), q, cust, logger.Discard())
}

func TestProcessSingleChat(t *testing.T) {
	res := ProcessSingleChat(context.Background(), enricher(classifier.MockCompleter{}),
		"This is the worst service ever, I want a refund now!")

	got := res.TypedLabels()
	want := types.Labels{
		Sentiment:              types.SentimentNegative,
		QueryClassification:    types.QueryRefund,
		CustomerClassification: types.CustomerExtremelyUnhappy,
	}
	if got != want {
		t.Errorf("labels = %+v, want %+v", got, want)
	}
	if len(res.Errors) != 0 {
		t.Errorf("unexpected errors %v", res.Errors)
	}
}

func TestProcessSingleChat_Fallbacks(t *testing.T) {
	res := ProcessSingleChat(context.Background(), enricher(errCompleter{}), "where is my order")

	got := res.TypedLabels()
	if got.QueryClassification != types.QueryOthers || got.CustomerClassification != types.CustomerFenceSitters {
		t.Errorf("labels = %+v", got)
	}
	if _, ok := res.Errors[types.ColQueryClassification]; !ok {
		t.Errorf("expected query error to be reported, got %v", res.Errors)
	}
	if _, ok := res.Errors[types.ColCustomerSentiment]; ok {
		t.Error("sentiment never fails")
	}
}
