package types

// Column names of the chat dataset.
const (
	ColChatMessages           = "chat_messages"
	ColChatCapturedDate       = "chat_captured_date"
	ColCustomerSentiment      = "customer_sentiment"
	ColQueryClassification    = "query_classification"
	ColCustomerClassification = "customer_classification"
)

// DerivedColumns are the columns the enrichment pipeline owns, in output order.
var DerivedColumns = []string{
	ColCustomerSentiment,
	ColQueryClassification,
	ColCustomerClassification,
}

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Query classification categories.
const (
	QueryProductRelated = "product related"
	QueryOrderRelated   = "order related"
	QueryRefund         = "refund"
	QueryReplacement    = "replacement"
	QueryGeneric        = "generic"
	QueryOthers         = "others"
)

// Customer-state classification categories.
const (
	CustomerExtremelyUnhappy = "extremely unhappy"
	CustomerUnhappy          = "unhappy"
	CustomerHappy            = "happy"
	CustomerFenceSitters     = "fence sitters"
)

var QueryCategories = []string{
	QueryProductRelated, QueryOrderRelated, QueryRefund,
	QueryReplacement, QueryGeneric, QueryOthers,
}

var CustomerCategories = []string{
	CustomerExtremelyUnhappy, CustomerUnhappy, CustomerHappy, CustomerFenceSitters,
}

// ChatRecord is a typed view of one dataset row.
type ChatRecord struct {
	ChatMessages           string `json:"chat_messages"`
	ChatCapturedDate       string `json:"chat_captured_date,omitempty"`
	CustomerSentiment      string `json:"customer_sentiment,omitempty"`
	QueryClassification    string `json:"query_classification,omitempty"`
	CustomerClassification string `json:"customer_classification,omitempty"`
}

// Labels is the full set of derived labels for one message.
type Labels struct {
	Sentiment              Sentiment `json:"customer_sentiment"`
	QueryClassification    string    `json:"query_classification"`
	CustomerClassification string    `json:"customer_classification"`
}
