package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"chat-insights-go/internal/actionable"
	"chat-insights-go/internal/aggregator"
	"chat-insights-go/internal/dataset"
	"chat-insights-go/internal/logger"
	"chat-insights-go/internal/pipeline"
	"chat-insights-go/internal/processor"
	"chat-insights-go/internal/types"
)

const maxClassifyBody = 64 << 10

// SummaryResponse is served by /summary.
type SummaryResponse struct {
	aggregator.Insight
	ActionCard actionable.ActionCard `json:"action_card"`
}

type classifyRequest struct {
	Text string `json:"text"`
}

// NewMux serves the read-only insights API over the dataset at dataPath. The
// dataset is loaded per request and never written.
func NewMux(dataPath string, recentLimit int, e *pipeline.Enricher, log *logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		log.WithRequest(r).Debug("health check")
		fmt.Fprint(w, "ok")
	})

	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "summary")
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ds, err := dataset.Load(dataPath)
		if err != nil {
			reqLog.WithField("error", err.Error()).Error("dataset load error")
			http.Error(w, "dataset load error", http.StatusInternalServerError)
			return
		}
		ins := aggregator.Aggregate(dataset.Summarize(ds))
		writeJSON(w, http.StatusOK, SummaryResponse{Insight: ins, ActionCard: actionable.Generate(ins)}, reqLog)
	})

	mux.HandleFunc("/recent", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "recent")
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		limit := recentLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		ds, err := dataset.Load(dataPath)
		if err != nil {
			reqLog.WithField("error", err.Error()).Error("dataset load error")
			http.Error(w, "dataset load error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, recentView(ds.Tail(limit)), reqLog)
	})

	// classify one ad-hoc message; the dataset is not touched
	mux.HandleFunc("/classify", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "classify")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req classifyRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxClassifyBody)).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			reqLog.Warn("missing text")
			http.Error(w, "missing text", http.StatusBadRequest)
			return
		}
		res := processor.ProcessSingleChat(r.Context(), e, req.Text)
		reqLog.WithField("duration_ms", res.DurationMs).Info("classify finished")
		writeJSON(w, http.StatusOK, res, reqLog)
	})

	return mux
}

type recentMessage struct {
	ChatMessages      string `json:"chat_messages"`
	CustomerSentiment string `json:"customer_sentiment"`
	ChatCapturedDate  string `json:"chat_captured_date"`
}

func recentView(records []types.ChatRecord) []recentMessage {
	out := make([]recentMessage, len(records))
	for i, r := range records {
		out[i] = recentMessage{
			ChatMessages:      r.ChatMessages,
			CustomerSentiment: r.CustomerSentiment,
			ChatCapturedDate:  r.ChatCapturedDate,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any, log *logrus.Entry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error("failed to write response: ", err)
	}
}
