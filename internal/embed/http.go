package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Static errors for the HTTP embeddings client.
var (
	// ErrBaseURLRequired is returned when the base URL is not provided.
	ErrBaseURLRequired = errors.New("embed: base URL is required")
	// ErrModelRequired is returned when the model name is not provided.
	ErrModelRequired = errors.New("embed: model name is required")
	// ErrRequestFailed is returned when the endpoint responds with a non-2xx
	// status code.
	ErrRequestFailed = errors.New("embed: embeddings request failed")
	// ErrMissingIndex is returned when the response omits a vector for one of
	// the submitted texts.
	ErrMissingIndex = errors.New("embed: response is missing a vector index")
)

// Client calls an OpenAI-compatible /v1/embeddings endpoint. One Embed call
// maps to one batched POST; the pipeline never retries failed calls.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	device     string
	httpClient *http.Client
}

var _ Embedder = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the bearer token for authentication.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDevice sets the execution target forwarded to the embedding backend.
// Hosted endpoints ignore it; self-hosted runtimes use it to place the model.
func WithDevice(device string) ClientOption {
	return func(c *Client) {
		c.device = device
	}
}

// NewClient creates an embeddings client for the given endpoint and model.
// The API key can be set via the WithAPIKey option; if not provided, it is
// read from the EMBEDDER_API_KEY environment variable. An empty key is
// allowed for unauthenticated local endpoints.
func NewClient(baseURL, model string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if model == "" {
		return nil, ErrModelRequired
	}

	c := &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		c.apiKey = os.Getenv("EMBEDDER_API_KEY")
	}

	return c, nil
}

type embeddingsRequest struct {
	Model  string   `json:"model"`
	Input  []string `json:"input"`
	Device string   `json:"device,omitempty"`
}

type embeddingsResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Embed sends one batched embeddings request and returns vectors in text
// order, regardless of the order the endpoint emits them in.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}

	body, err := json.Marshal(embeddingsRequest{
		Model:  c.model,
		Input:  texts,
		Device: c.device,
	})
	if err != nil {
		return nil, fmt.Errorf("embed: marshal request: %w", err)
	}

	url := c.baseURL + "/v1/embeddings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("embed: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed: send request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("embed: read response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s",
			ErrRequestFailed, httpResp.StatusCode, truncate(respBody, 200))
	}

	var resp embeddingsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("embed: decode response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, resp.Error.Message)
	}

	out := make([][]float64, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("%w: index %d out of range", ErrMissingIndex, d.Index)
		}
		out[d.Index] = d.Embedding
	}
	for i, vec := range out {
		if vec == nil {
			return nil, fmt.Errorf("%w: index %d", ErrMissingIndex, i)
		}
	}
	if err := validateVectors(texts, out); err != nil {
		return nil, err
	}
	return out, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
