package processor

import (
	"context"
	"time"

	"chat-insights-go/internal/pipeline"
	"chat-insights-go/internal/types"
)

// ChatResult is returned by /classify
type ChatResult struct {
	Text       string            `json:"text"`
	Labels     map[string]string `json:"labels"`
	Errors     map[string]string `json:"errors,omitempty"`
	DurationMs int64             `json:"duration_ms"`
}

// ProcessSingleChat labels one message with the enricher's policies, applying
// the same fallbacks as a dataset run. Nothing is persisted.
func ProcessSingleChat(ctx context.Context, e *pipeline.Enricher, text string) ChatResult {
	start := time.Now()
	res := ChatResult{Text: text, Labels: map[string]string{}}
	for _, p := range e.Policies() {
		label, err := p.Apply(ctx, text)
		if err != nil {
			if res.Errors == nil {
				res.Errors = map[string]string{}
			}
			res.Errors[p.Column] = err.Error()
		}
		res.Labels[p.Column] = label
	}
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

// TypedLabels returns the typed label set of a result.
func (r ChatResult) TypedLabels() types.Labels {
	return types.Labels{
		Sentiment:              types.Sentiment(r.Labels[types.ColCustomerSentiment]),
		QueryClassification:    r.Labels[types.ColQueryClassification],
		CustomerClassification: r.Labels[types.ColCustomerClassification],
	}
}
