package pipeline

import (
	"context"

	"chat-insights-go/internal/classifier"
	"chat-insights-go/internal/sentiment"
	"chat-insights-go/internal/types"
)

// LabelFunc derives one label from chat text.
type LabelFunc func(ctx context.Context, text string) (string, error)

// Policy describes how one derived column is backfilled: the column is created
// when absent, rows holding a value are left alone, and a labeling error on a
// row stores Fallback instead.
type Policy struct {
	Column   string
	Label    LabelFunc
	Fallback string
}

// Apply labels text, substituting the fallback on error. The returned error is
// the labeling failure, if any, for the caller to report.
func (p Policy) Apply(ctx context.Context, text string) (string, error) {
	label, err := p.Label(ctx, text)
	if err != nil {
		return p.Fallback, err
	}
	return label, nil
}

// SentimentPolicy scores sentiment locally; it never fails.
func SentimentPolicy(s *sentiment.Scorer) Policy {
	return Policy{
		Column: types.ColCustomerSentiment,
		Label: func(_ context.Context, text string) (string, error) {
			return string(s.Score(text)), nil
		},
		Fallback: string(types.SentimentNeutral),
	}
}

// ClassifierPolicy fills the classifier's axis column, falling back to the
// axis fallback label on any classification error.
func ClassifierPolicy(c *classifier.Classifier) Policy {
	axis := c.Axis()
	return Policy{
		Column:   axis.Column,
		Label:    c.Classify,
		Fallback: axis.Fallback,
	}
}
