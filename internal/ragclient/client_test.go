package ragclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAskSendsSessionAndPrompt(t *testing.T) {
	var gotPath, gotSession string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSession = r.Header.Get("session-id")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response": "An answer.",
			"sources": []map[string]any{
				{"id": 3, "title": "Data Science in Practice", "relevance": 0.88, "excerpt": "snippet"},
			},
			"confidence": 0.91,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.Ask(context.Background(), "sess-123", "What is data science?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if gotPath != "/chat/stream" {
		t.Fatalf("path = %q, want /chat/stream", gotPath)
	}
	if gotSession != "sess-123" {
		t.Fatalf("session-id header = %q", gotSession)
	}
	if gotBody["Prompt"] != "What is data science?" {
		t.Fatalf("body = %+v, want Prompt field", gotBody)
	}
	if result.Query != "What is data science?" {
		t.Fatalf("query = %q", result.Query)
	}
	if result.Response != "An answer." {
		t.Fatalf("response = %q", result.Response)
	}
	if len(result.Sources) != 1 || result.Sources[0].ID != 3 || result.Sources[0].Relevance != 0.88 {
		t.Fatalf("sources = %+v", result.Sources)
	}
	if result.Confidence != 0.91 {
		t.Fatalf("confidence = %f", result.Confidence)
	}
}

func TestAskNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "upstream down"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Ask(context.Background(), "s", "q")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Message != "upstream down" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestAskMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Ask(context.Background(), "s", "q")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestAskEmptyResponseText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "   "})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Ask(context.Background(), "s", "q")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestAskTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL).Ask(context.Background(), "s", "q")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("transport error must not classify as malformed")
	}
}
