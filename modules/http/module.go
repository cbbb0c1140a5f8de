// Package http implements the `http` action, a single HTTP request with
// optional retries and a status assertion.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/handlers"
)

// Kind is the action kind used in `run` blocks.
const Kind = "http"

const defaultTimeout = 30 * time.Second

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Input defines the arguments for the http action.
type Input struct {
	URL     string            `hcl:"url"`
	Method  string            `hcl:"method,optional"`
	Body    string            `hcl:"body,optional"`
	Headers map[string]string `hcl:"headers,optional"`
	// ExpectStatus, when set, is the only accepted status code. Otherwise
	// any status below 400 is a success.
	ExpectStatus int    `hcl:"expect_status,optional"`
	Retries      int    `hcl:"retries,optional"`
	Timeout      string `hcl:"timeout,optional"`
}

// Output is the response of a successful request.
type Output struct {
	StatusCode int
	Status     string
	Body       string
}

// OnRunHTTP performs the request described by input.
func OnRunHTTP(ctx context.Context, input *Input) (any, error) {
	method := strings.ToUpper(input.Method)
	if method == "" {
		method = http.MethodGet
	}
	logger := ctxlog.FromContext(ctx).With("action", Kind, "method", method, "url", input.URL)

	timeout := defaultTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timeout %q: %w", input.Timeout, err)
		}
		timeout = d
	}
	if input.Retries < 0 {
		return nil, fmt.Errorf("retries must not be negative, got %d", input.Retries)
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(input.Retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryCondition)

	req := client.R().SetContext(ctx).SetHeaders(input.Headers)
	if input.Body != "" {
		req.SetBody(input.Body)
	}

	logger.Debug("Making HTTP request.", "retries", input.Retries, "timeout", timeout)
	resp, err := req.Execute(method, input.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	logger.Info("Received HTTP response.", "status", resp.Status(), "attempts", resp.Request.Attempt)

	if err := checkStatus(resp.StatusCode(), input.ExpectStatus); err != nil {
		return nil, err
	}

	return &Output{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       string(resp.Body()),
	}, nil
}

// retryCondition retries on transport errors and server-side failures.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

func checkStatus(got, want int) error {
	if want != 0 {
		if got != want {
			return fmt.Errorf("unexpected status %d, expected %d", got, want)
		}
		return nil
	}
	if got >= 400 {
		return fmt.Errorf("request failed with status %d", got)
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	handlers.Register(h, Kind, OnRunHTTP)
}
