package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"

	"chat-insights-go/internal/types"
)

// Compound thresholds of the VADER polarity score.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Scorer labels text by lexicon polarity. It holds no per-call state; build
// one per run and share it.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the VADER compound score in [-1, 1].
func (s *Scorer) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return s.analyzer.PolarityScores(text).Compound
}

// Score maps text onto Positive, Negative or Neutral.
func (s *Scorer) Score(text string) types.Sentiment {
	return LabelForCompound(s.Compound(text))
}

func LabelForCompound(c float64) types.Sentiment {
	switch {
	case c >= PositiveThreshold:
		return types.SentimentPositive
	case c <= NegativeThreshold:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}
