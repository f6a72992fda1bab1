package classifier

import (
	"fmt"
	"strings"

	"chat-insights-go/internal/types"
)

// Axis is one classification dimension: the dataset column it fills, its legal
// categories and the label used when classification fails.
type Axis struct {
	Name       string
	Column     string
	Categories []string
	Fallback   string
	// Subject completes "Classify the ..." in the system instruction.
	Subject string
}

var QueryAxis = Axis{
	Name:       "query",
	Column:     types.ColQueryClassification,
	Categories: types.QueryCategories,
	Fallback:   types.QueryOthers,
	Subject:    "customer's query",
}

var CustomerAxis = Axis{
	Name:       "customer_state",
	Column:     types.ColCustomerClassification,
	Categories: types.CustomerCategories,
	Fallback:   types.CustomerFenceSitters,
	Subject:    "customer's emotional state",
}

// SystemPrompt is the fixed instruction sent with every message on this axis.
func (a Axis) SystemPrompt() string {
	return fmt.Sprintf(
		"Classify the %s into exactly one of these categories: %s. "+
			"Respond with only the category name.",
		a.Subject, strings.Join(a.Categories, ", "))
}

// Allows reports whether label is one of the axis categories.
func (a Axis) Allows(label string) bool {
	for _, c := range a.Categories {
		if c == label {
			return true
		}
	}
	return false
}
