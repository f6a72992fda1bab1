package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"chat-insights-go/internal/config"
	"chat-insights-go/internal/logger"
	"chat-insights-go/internal/types"
)

// fakeCompleter lets tests script model replies.
type fakeCompleter struct {
	CompleteFunc func(ctx context.Context, system, user string) (string, error)
	Calls        int
	LastSystem   string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.Calls++
	f.LastSystem = system
	return f.CompleteFunc(ctx, system, user)
}

func reply(s string) *fakeCompleter {
	return &fakeCompleter{CompleteFunc: func(context.Context, string, string) (string, error) { return s, nil }}
}

func TestClassify_NormalizesReply(t *testing.T) {
	fc := reply("  Refund \n")
	c := New(fc, QueryAxis, false)

	got, err := c.Classify(context.Background(), "I want my money back")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != types.QueryRefund {
		t.Errorf("got %q", got)
	}
	for _, cat := range types.QueryCategories {
		if !strings.Contains(fc.LastSystem, cat) {
			t.Errorf("system prompt missing category %q", cat)
		}
	}
}

func TestClassify_VerbatimWhenNotStrict(t *testing.T) {
	c := New(reply("Billing Issue"), QueryAxis, false)
	got, err := c.Classify(context.Background(), "charged twice")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != "billing issue" {
		t.Errorf("got %q", got)
	}
}

func TestClassify_StrictRejectsUnknownLabel(t *testing.T) {
	c := New(reply("Billing Issue"), QueryAxis, true)
	_, err := c.Classify(context.Background(), "charged twice")
	if !errors.Is(err, ErrUnknownLabel) {
		t.Fatalf("expected ErrUnknownLabel, got %v", err)
	}
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Axis != QueryAxis.Name {
		t.Errorf("expected *Error for axis %q, got %#v", QueryAxis.Name, err)
	}

	c = New(reply("Happy"), CustomerAxis, true)
	if got, err := c.Classify(context.Background(), "thanks"); err != nil || got != types.CustomerHappy {
		t.Errorf("strict should accept known label, got %q %v", got, err)
	}
}

func TestClassify_Errors(t *testing.T) {
	boom := errors.New("boom")
	fc := &fakeCompleter{CompleteFunc: func(context.Context, string, string) (string, error) { return "", boom }}
	c := New(fc, CustomerAxis, false)

	if _, err := c.Classify(context.Background(), "hi"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped completer error, got %v", err)
	}
	if _, err := c.Classify(context.Background(), "  "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
	if fc.Calls != 1 {
		t.Errorf("empty text must not reach the model, calls = %d", fc.Calls)
	}
	if _, err := New(reply("   "), CustomerAxis, false).Classify(context.Background(), "hi"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func chatResponse(content string) map[string]any {
	return map[string]any{
		"id": "test-id",
		"choices": []any{
			map[string]any{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestGateway_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		var body struct {
			Model    string              `json:"model"`
			Messages []map[string]string `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if body.Model != "test-model" || len(body.Messages) != 2 {
			t.Errorf("unexpected request %+v", body)
			return
		}
		if body.Messages[0]["role"] != "system" || body.Messages[1]["role"] != "user" {
			t.Errorf("unexpected roles %+v", body.Messages)
		}
		if body.Messages[1]["content"] != "where is my parcel" {
			t.Errorf("user content = %q", body.Messages[1]["content"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse("Order Related"))
	}))
	defer server.Close()

	g, err := NewGateway(GatewayConfig{URL: server.URL, APIKey: "test-key", Model: "test-model"}, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	c := New(g, QueryAxis, true)
	got, err := c.Classify(context.Background(), "where is my parcel")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != types.QueryOrderRelated {
		t.Errorf("got %q", got)
	}
}

func TestGateway_SingleAttemptByDefault(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "Internal server error"}}`))
	}))
	defer server.Close()

	g, _ := NewGateway(GatewayConfig{URL: server.URL, APIKey: "k"}, logger.Discard())
	if _, err := g.Complete(context.Background(), "sys", "hi"); err == nil {
		t.Fatal("expected error on 500")
	}
	if hits != 1 {
		t.Errorf("expected exactly one attempt, got %d", hits)
	}
}

func TestGateway_RetriesServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(chatResponse("happy"))
	}))
	defer server.Close()

	g, _ := NewGateway(GatewayConfig{
		URL: server.URL, APIKey: "k", MaxRetries: 2, RetryInitialInterval: time.Millisecond,
	}, logger.Discard())
	got, err := g.Complete(context.Background(), "sys", "thanks")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "happy" || hits != 2 {
		t.Errorf("got %q after %d hits", got, hits)
	}
}

func TestGateway_ClientErrorIsPermanent(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	g, _ := NewGateway(GatewayConfig{
		URL: server.URL, APIKey: "bad", MaxRetries: 3, RetryInitialInterval: time.Millisecond,
	}, logger.Discard())
	if _, err := g.Complete(context.Background(), "sys", "hi"); err == nil {
		t.Fatal("expected error on 401")
	}
	if hits != 1 {
		t.Errorf("4xx must not be retried, got %d hits", hits)
	}
}

func TestGateway_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	g, _ := NewGateway(GatewayConfig{URL: server.URL, APIKey: "k"}, logger.Discard())
	if _, err := g.Complete(context.Background(), "sys", "hi"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestNewGateway_NotConfigured(t *testing.T) {
	if _, err := NewGateway(GatewayConfig{URL: "http://x"}, logger.Discard()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNewCompleter_WithoutCredentialsFallsBack(t *testing.T) {
	c, err := NewCompleter(config.Config{LLMGatewayURL: "http://x"}, logger.Discard())
	if err != nil {
		t.Fatalf("NewCompleter: %v", err)
	}
	query, customer := NewPair(c, false)

	_, err = query.Classify(context.Background(), "where is my order")
	var cerr *Error
	if !errors.As(err, &cerr) || !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected classifier error wrapping ErrNotConfigured, got %v", err)
	}
	if cerr.Axis != QueryAxis.Name {
		t.Errorf("axis = %q", cerr.Axis)
	}
	if _, err := customer.Classify(context.Background(), "hi"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("customer axis: got %v", err)
	}
}

func TestMockCompleter(t *testing.T) {
	query, customer := NewPair(MockCompleter{}, true)
	ctx := context.Background()
	text := "This is the worst service ever, I want a refund now!"

	if got, err := query.Classify(ctx, text); err != nil || got != types.QueryRefund {
		t.Errorf("query = %q %v", got, err)
	}
	if got, err := customer.Classify(ctx, text); err != nil || got != types.CustomerExtremelyUnhappy {
		t.Errorf("customer = %q %v", got, err)
	}
	if got, _ := customer.Classify(ctx, "ok"); got != types.CustomerFenceSitters {
		t.Errorf("default customer label = %q", got)
	}
}
