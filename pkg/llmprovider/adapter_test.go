package llmprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIAdapter_GenerateContent(t *testing.T) {
	var gotMessages []map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body struct {
			Model    string           `json:"model"`
			Messages []map[string]any `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotMessages = body.Messages

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "1", "object": "chat.completion", "model": "llama3.1",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"intents\":[]}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 7, "completion_tokens": 3, "total_tokens": 10}
		}`))
	}))
	defer ts.Close()

	a := NewOpenAIAdapter(OpenAIConfig{Name: "ollama", APIKey: "ollama", BaseURL: ts.URL, Model: "llama3.1"})
	resp, err := a.GenerateContent(context.Background(), &Request{
		SystemInstruction: &Message{Parts: []Part{{Text: "classify"}}},
		Messages:          []Message{TextMessage("user", "where is ORD123")},
		Temperature:       0.2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Text() != `{"intents":[]}` {
		t.Errorf("unexpected text %q", resp.Text())
	}
	if resp.ProviderName != "ollama" || resp.Usage.TotalTokens != 10 {
		t.Errorf("unexpected response metadata: %+v", resp)
	}
	if len(gotMessages) != 2 || gotMessages[0]["role"] != "system" || gotMessages[1]["content"] != "where is ORD123" {
		t.Errorf("unexpected request messages: %v", gotMessages)
	}
}

func TestOpenAIAdapter_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "1", "choices": []}`))
	}))
	defer ts.Close()

	a := NewOpenAIAdapter(OpenAIConfig{Name: "openai", APIKey: "k", BaseURL: ts.URL, Model: "m"})
	if _, err := a.GenerateContent(context.Background(), &Request{Messages: []Message{TextMessage("user", "hi")}}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestToOpenAIRole(t *testing.T) {
	tests := map[string]string{"assistant": "assistant", "model": "assistant", "system": "system", "user": "user", "": "user"}
	for in, want := range tests {
		if got := toOpenAIRole(in); got != want {
			t.Errorf("toOpenAIRole(%q) = %q, want %q", in, got, want)
		}
	}
}
