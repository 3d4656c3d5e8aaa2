// Package llm is a streaming client for OpenAI compatible chat completion APIs
package llm

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "draftdesk/internal/platform/errors"
	"draftdesk/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURLDefault   = "https://api.openai.com/v1"
	modelDefault     = "gpt-4o-mini"
	defaultUA        = "draftdesk"
	defaultTimeout   = 30 * time.Second
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	maxBackoff       = 30 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	Model     string
	UserAgent string

	// Timeout bounds connecting and waiting for response headers, not the stream itself
	Timeout time.Duration

	// RPS <= 0 disables throttling
	RPS   float64
	Burst int

	// Retry config for transport errors, 429 and 5xx before the stream starts
	MaxRetries int
	RetryBase  time.Duration
}

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single completion request
type Request struct {
	Model       string
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

type wireRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

type chunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// StreamError is a failure after the stream started, Partial holds what was received
type StreamError struct {
	Partial string
	Err     error
}

func (e *StreamError) Error() string {
	if e.Partial != "" {
		return fmt.Sprintf("llm stream failed after %d chars: %v", len(e.Partial), e.Err)
	}
	return fmt.Sprintf("llm stream failed: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// Client streams chat completions
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(time.Duration)
}

func (o Options) withDefaults() Options {
	o.BaseURL = strings.TrimRight(cmp.Or(o.BaseURL, baseURLDefault), "/")
	o.Model = cmp.Or(o.Model, modelDefault)
	o.UserAgent = cmp.Or(o.UserAgent, defaultUA)
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	// negative retries means none, zero means the default
	switch {
	case o.MaxRetries < 0:
		o.MaxRetries = 0
	case o.MaxRetries == 0:
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	o.Burst = max(o.Burst, 1)
	return o
}

// NewClient creates a Client with defaults filled in
func NewClient(o Options) *Client {
	o = o.withDefaults()
	limit := rate.Inf
	if o.RPS > 0 {
		limit = rate.Limit(o.RPS)
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.ResponseHeaderTimeout = o.Timeout

	return &Client{
		http:    &http.Client{Transport: tr},
		opts:    o,
		limiter: rate.NewLimiter(limit, o.Burst),
		log:     *logger.Named("llm"),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Model returns the default model
func (c *Client) Model() string { return c.opts.Model }

// Stream sends req and calls onDelta with every content fragment in order
// it returns when the upstream reports [DONE] or a finish reason
func (c *Client) Stream(ctx context.Context, req Request, onDelta func(delta string)) error {
	body, err := c.encode(req)
	if err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return perr.Wrapf(err, perr.ErrorCodeTooManyRequests, "llm local rate limit")
	}

	resp, err := c.open(ctx, body)
	if err != nil {
		return err
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	return c.consume(ctx, resp.Body, onDelta)
}

// Complete is Stream collected into one string
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	var b strings.Builder
	err := c.Stream(ctx, req, func(d string) { b.WriteString(d) })
	return b.String(), err
}

func (c *Client) encode(req Request) ([]byte, error) {
	msgs := make([]Message, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, Message{Role: "system", Content: req.System})
	}
	msgs = append(msgs, req.Messages...)
	if len(msgs) == 0 {
		return nil, perr.InvalidArgf("llm request has no messages")
	}

	model := req.Model
	if model == "" {
		model = c.opts.Model
	}
	b, err := json.Marshal(wireRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      true,
	})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "llm encode request")
	}
	return b, nil
}

// retryable marks a failure worth another attempt, after wait when it is set
type retryable struct {
	err  error
	wait time.Duration
}

func (r *retryable) Error() string { return r.err.Error() }
func (r *retryable) Unwrap() error { return r.err }

// open posts the request until a 200 arrives or retries run out
func (c *Client) open(ctx context.Context, body []byte) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := c.try(ctx, attempt, body)
		var re *retryable
		if !errors.As(err, &re) {
			return resp, err
		}
		if attempt >= c.opts.MaxRetries {
			return nil, re.err
		}
		wait := re.wait
		if wait <= 0 {
			wait = c.backoff(attempt)
		}
		c.log.Warn().Err(re.err).Dur("retry_in", wait).Int("attempt", attempt).Msg("llm retrying")
		c.sleep(wait)
	}
}

// try is one POST to /chat/completions
func (c *Client) try(ctx context.Context, attempt int, body []byte) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "llm new request failed")
	}
	h := req.Header
	h.Set("User-Agent", c.opts.UserAgent)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	if c.opts.APIKey != "" {
		h.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &retryable{err: perr.Wrapf(err, perr.ErrorCodeUnavailable, "llm request failed")}
	}
	c.log.Debug().
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Dur("latency", c.now().Sub(start)).
		Msg("llm http response")

	code := resp.StatusCode
	if code == http.StatusOK {
		return resp, nil
	}
	if code == http.StatusTooManyRequests || code >= 500 {
		_ = drainAndClose(resp.Body)
		if code == http.StatusTooManyRequests {
			return nil, &retryable{
				err:  perr.Newf(perr.ErrorCodeTooManyRequests, "llm rate limited"),
				wait: retryAfter(resp.Header),
			}
		}
		return nil, &retryable{err: perr.Newf(perr.ErrorCodeUnavailable, "llm upstream status %d", code)}
	}
	tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = resp.Body.Close()
	return nil, perr.Newf(perr.ErrorCodeUnknown, "llm unexpected status %d body %s", code, strings.TrimSpace(string(tail)))
}

// consume reads the event stream, malformed chunks are skipped
func (c *Client) consume(ctx context.Context, body io.Reader, onDelta func(string)) error {
	var partial strings.Builder
	r := NewSSEReader(body)
	for {
		if err := ctx.Err(); err != nil {
			return &StreamError{Partial: partial.String(), Err: err}
		}

		_, data, err := r.ReadEvent()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return &StreamError{Partial: partial.String(), Err: ctx.Err()}
			}
			return &StreamError{Partial: partial.String(), Err: perr.Wrapf(err, perr.ErrorCodeUnavailable, "llm stream read failed")}
		}

		if bytes.Equal(bytes.TrimSpace(data), []byte("[DONE]")) {
			return nil
		}

		var ch chunk
		if err := json.Unmarshal(data, &ch); err != nil {
			c.log.Debug().Err(err).Int("bytes", len(data)).Msg("llm skipping malformed chunk")
			continue
		}
		if ch.Error != nil {
			return &StreamError{Partial: partial.String(), Err: perr.Newf(perr.ErrorCodeUnavailable, "llm upstream error: %s", ch.Error.Message)}
		}
		if len(ch.Choices) == 0 {
			continue
		}

		choice := ch.Choices[0]
		if d := choice.Delta.Content; d != "" {
			partial.WriteString(d)
			if onDelta != nil {
				onDelta(d)
			}
		}
		if choice.FinishReason != nil && *choice.FinishReason != "" {
			return nil
		}
	}
}

// backoff doubles RetryBase per attempt up to maxBackoff
func (c *Client) backoff(attempt int) time.Duration {
	if attempt >= 32 {
		return maxBackoff
	}
	if d := c.opts.RetryBase << uint(attempt); d > 0 && d < maxBackoff {
		return d
	}
	return maxBackoff
}

// retryAfter reads a Retry-After header given in seconds
func retryAfter(h http.Header) time.Duration {
	s := strings.TrimSpace(h.Get("Retry-After"))
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
