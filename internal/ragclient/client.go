// Package ragclient calls the remote answering service over HTTP.
package ragclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ragbooks/pkg/domain"
)

// ErrMalformedResponse marks a 2xx reply whose body does not carry a usable
// answer. Unlike transport or status failures it is not recoverable locally.
var ErrMalformedResponse = errors.New("malformed rag response")

// APIError represents a non-success status from the answering service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client calls the answering service. The timeout doubles as the remote
// deadline: an expired call surfaces as a transport error.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an answering-service client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type askRequest struct {
	Prompt string `json:"Prompt"`
}

type askResponse struct {
	Response   string           `json:"response"`
	Sources    []responseSource `json:"sources"`
	Confidence float64          `json:"confidence"`
}

type responseSource struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Relevance float64 `json:"relevance"`
	Excerpt   string  `json:"excerpt"`
}

// Ask sends the question under the given session id and decodes the answer.
func (c *Client) Ask(ctx context.Context, sessionID, question string) (domain.RagResult, error) {
	payload, err := json.Marshal(askRequest{Prompt: question})
	if err != nil {
		return domain.RagResult{}, fmt.Errorf("encode prompt: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/stream", bytes.NewReader(payload))
	if err != nil {
		return domain.RagResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("session-id", sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RagResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&errResp)
		msg := errResp.Error
		if msg == "" {
			msg = resp.Status
		}
		return domain.RagResult{}, &APIError{Status: resp.StatusCode, Message: msg}
	}

	var body askResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return domain.RagResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(body.Response) == "" {
		return domain.RagResult{}, fmt.Errorf("%w: empty response text", ErrMalformedResponse)
	}

	sources := make([]domain.Source, 0, len(body.Sources))
	for _, s := range body.Sources {
		sources = append(sources, domain.Source{
			ID:        s.ID,
			Title:     s.Title,
			Relevance: s.Relevance,
			Excerpt:   s.Excerpt,
		})
	}
	return domain.RagResult{
		Query:      question,
		Response:   body.Response,
		Sources:    sources,
		Confidence: body.Confidence,
	}, nil
}
