package aggregator

import (
	"chat-insights-go/internal/dataset"
	"chat-insights-go/internal/types"
)

// Share is a label's count and its percentage of all conversations.
type Share struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type Insight struct {
	TotalConversations int                `json:"total_conversations"`
	PositiveSentiments int                `json:"positive_sentiments"`
	NegativeSentiments int                `json:"negative_sentiments"`
	Distribution       map[string][]Share `json:"distribution"`
}

// Aggregate turns frequency tables into the counts and percentages the
// dashboard displays.
func Aggregate(s dataset.DatasetSummary) Insight {
	ins := Insight{
		TotalConversations: s.TotalConversations,
		Distribution:       map[string][]Share{},
	}
	for _, col := range s.Columns {
		shares := make([]Share, 0, len(col.Counts))
		for _, f := range col.Counts {
			pct := 0.0
			if s.TotalConversations > 0 {
				pct = float64(f.Count) / float64(s.TotalConversations) * 100
			}
			shares = append(shares, Share{Label: f.Label, Count: f.Count, Percent: pct})
		}
		ins.Distribution[col.Column] = shares
	}
	if sent, ok := s.Column(types.ColCustomerSentiment); ok {
		ins.PositiveSentiments = sent.Count(string(types.SentimentPositive))
		ins.NegativeSentiments = sent.Count(string(types.SentimentNegative))
	}
	return ins
}

// Percent returns the share of label in column, or 0.
func (ins Insight) Percent(column, label string) float64 {
	for _, s := range ins.Distribution[column] {
		if s.Label == label {
			return s.Percent
		}
	}
	return 0
}

// Dominant returns the most frequent non-empty label of column.
func (ins Insight) Dominant(column string) string {
	for _, s := range ins.Distribution[column] {
		if s.Label != dataset.EmptyLabel {
			return s.Label
		}
	}
	return ""
}
