// Package apigateway turns logical console operations into authenticated
// JSON requests against the backend and normalizes every failure into a
// single *internal.AppError.
package apigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/chemstack/chemconsole/internal"
)

// TokenProvider hands the client the current session token, or "" when the
// user is logged out.
type TokenProvider interface {
	Token() string
}

// Caller is the narrow surface resource clients depend on.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body, out any) error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	logger     *slog.Logger
}

func NewClient(cfg internal.APIConfig, tokens TokenProvider, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		logger:     logger,
	}
}

// Call performs one request. Requests are never retried: every failure is
// terminal for the operation that issued it.
//
// Non-2xx responses produce an API error carrying the backend's "message" or
// "error" field; network and decode failures produce a transport error with
// no status code.
func (c *Client) Call(ctx context.Context, method, endpoint string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return internal.NewInternalError("failed to encode request body", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return internal.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", method, "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed in transport", "method", method, "endpoint", endpoint, "error", err)
		return internal.NewTransportError(fmt.Sprintf("request to %s failed: %v", endpoint, err), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return internal.NewTransportError(fmt.Sprintf("failed to read response from %s: %v", endpoint, err), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := extractMessage(raw)
		c.logger.Warn("api request rejected",
			"method", method,
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"message", message)
		return internal.NewAPIError(resp.StatusCode, message)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return internal.NewTransportError(fmt.Sprintf("malformed response from %s: %v", endpoint, err), err)
		}
	}

	return nil
}

// extractMessage pulls a human-readable message out of an error body. The
// backend uses "message" for expected rejections and "error" for database
// and server failures.
func extractMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "unknown error"
}
