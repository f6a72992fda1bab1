package sentiment

import (
	"testing"

	"chat-insights-go/internal/types"
)

func TestLabelForCompound(t *testing.T) {
	cases := []struct {
		c    float64
		want types.Sentiment
	}{
		{0.05, types.SentimentPositive},
		{0.9, types.SentimentPositive},
		{1, types.SentimentPositive},
		{-0.05, types.SentimentNegative},
		{-1, types.SentimentNegative},
		{0, types.SentimentNeutral},
		{0.0499, types.SentimentNeutral},
		{-0.0499, types.SentimentNeutral},
	}
	for _, tc := range cases {
		if got := LabelForCompound(tc.c); got != tc.want {
			t.Errorf("LabelForCompound(%v) = %s, want %s", tc.c, got, tc.want)
		}
	}
}

func TestScorer_Score(t *testing.T) {
	s := NewScorer()

	cases := map[string]types.Sentiment{
		"This is the worst service ever, I want a refund now!": types.SentimentNegative,
		"Thank you so much, the product is great and I love it": types.SentimentPositive,
		"":    types.SentimentNeutral,
		"   ": types.SentimentNeutral,
	}
	for text, want := range cases {
		if got := s.Score(text); got != want {
			t.Errorf("Score(%q) = %s (compound %.3f), want %s", text, got, s.Compound(text), want)
		}
	}
}
