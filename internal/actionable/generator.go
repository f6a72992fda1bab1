package actionable

import (
	"fmt"

	"chat-insights-go/internal/aggregator"
	"chat-insights-go/internal/types"
)

// InterventionThreshold is the share (percent) of unhappy conversations that
// calls for action.
const InterventionThreshold = 35.0

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

func Generate(ins aggregator.Insight) ActionCard {
	negative := ins.Percent(types.ColCustomerSentiment, string(types.SentimentNegative))
	unhappy := ins.Percent(types.ColCustomerClassification, types.CustomerExtremelyUnhappy) +
		ins.Percent(types.ColCustomerClassification, types.CustomerUnhappy)

	if ins.TotalConversations > 0 && (negative >= InterventionThreshold || unhappy >= InterventionThreshold) {
		topic := ins.Dominant(types.ColQueryClassification)
		if topic == "" {
			topic = "unclassified"
		}
		return ActionCard{
			Insight: fmt.Sprintf("High dissatisfaction: %.0f%% negative sentiment, %.0f%% unhappy customers", negative, unhappy),
			Action:  fmt.Sprintf("Review %s conversations first and follow up with unhappy customers", topic),
			Impact:  "Reduce churn and repeat contacts",
		}
	}
	return ActionCard{
		Insight: "No strong dissatisfaction pattern detected",
		Action:  "Monitor and collect more data",
		Impact:  "Low immediate intervention",
	}
}
