// Package backend is an HTTP client for the study-buddy backend API. The
// client implements the summariser, quiz generator, chat answerer and
// progress source interfaces so the sessions can run against it unchanged.
package backend

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

	"github.com/abhisek/studybuddy/internal/logger"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 30 * time.Second

// DefaultURL is the public backend.
const DefaultURL = "https://ai-study-buddy-backend-dexp.onrender.com"

// maxErrorBody caps how much of a failed response is read.
const maxErrorBody = 64 << 10

// Operation names, used as APIError.Op.
const (
	OpUpload    = "upload"
	OpSummarize = "summarize"
	OpQuiz      = "generate-quiz"
	OpChat      = "chat"
	OpProgress  = "progress"
	OpHealth    = "health"
)

var defaultMessages = map[string]string{
	OpUpload:    "Upload failed",
	OpSummarize: "Summarization failed",
	OpQuiz:      "Quiz generation failed",
	OpChat:      "Chat request failed",
	OpProgress:  "Failed to fetch progress",
	OpHealth:    "Backend is not responding",
}

// APIError is a failed backend call. Its message is the server's detail
// field when present, else the transport error, else a per-operation
// default.
type APIError struct {
	Op     string
	Status int // 0 for transport failures
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Op == OpHealth {
		return defaultMessages[OpHealth]
	}
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if msg, ok := defaultMessages[e.Op]; ok {
		return msg
	}
	return fmt.Sprintf("%s failed", e.Op)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client talks to the backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// New creates a client. Zero options fall back to DefaultURL and
// DefaultTimeout.
func New(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: base,
		http:    hc,
		log:     logger.OrNop(opts.Logger).With("component", "backend"),
	}
}

// BaseURL returns the backend root URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// postJSON sends body as JSON and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, op, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &APIError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, out)
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	if err != nil {
		c.log.Warn("backend request failed", "op", op, "latency_ms", latency.Milliseconds(), "error", err)
		return &APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("backend response", "op", op, "status", resp.StatusCode, "latency_ms", latency.Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Op:     op,
			Status: resp.StatusCode,
			Detail: parseDetail(body),
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// parseDetail extracts the "detail" field of an error body. FastAPI sends a
// string for handled errors and a list of objects for validation errors.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, envelope.Detail); err != nil {
		return ""
	}
	if buf.String() == "null" {
		return ""
	}
	return buf.String()
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
