package classifier

import (
	"context"
	"strings"

	"chat-insights-go/internal/types"
)

// MockCompleter answers from keyword rules so runs work offline
// (USE_MOCK_LLM=true). Replies are deterministic per input.
type MockCompleter struct{}

var _ Completer = MockCompleter{}

var queryKeywords = []struct {
	label    string
	keywords []string
}{
	{types.QueryRefund, []string{"refund", "money back", "reimburse"}},
	{types.QueryReplacement, []string{"replace", "exchange", "swap"}},
	{types.QueryOrderRelated, []string{"order", "delivery", "shipping", "tracking", "package"}},
	{types.QueryProductRelated, []string{"product", "quality", "size", "broken", "defect"}},
	{types.QueryGeneric, []string{"hello", "hi ", "question", "help", "info"}},
}

var customerKeywords = []struct {
	label    string
	keywords []string
}{
	{types.CustomerExtremelyUnhappy, []string{"worst", "terrible", "never again", "scam", "furious"}},
	{types.CustomerUnhappy, []string{"disappointed", "late", "bad", "not happy", "upset", "refund"}},
	{types.CustomerHappy, []string{"thank", "great", "love", "awesome", "perfect"}},
}

func (MockCompleter) Complete(_ context.Context, system, user string) (string, error) {
	lower := strings.ToLower(user)
	if strings.Contains(system, CustomerAxis.Subject) {
		for _, k := range customerKeywords {
			if containsAny(lower, k.keywords) {
				return k.label, nil
			}
		}
		return types.CustomerFenceSitters, nil
	}
	for _, k := range queryKeywords {
		if containsAny(lower, k.keywords) {
			return k.label, nil
		}
	}
	return types.QueryOthers, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
