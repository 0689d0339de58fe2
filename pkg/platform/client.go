package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	apperrors "annadata/pkg/errors"
)

// RequestIDHeader carries a per-request uuid for correlating client and server logs.
const RequestIDHeader = "X-Request-ID"

const maxErrorBody = 512

// HTTPClient issues JSON requests against a single base URL.
// It never retries: every call runs once to completion or failure.
type HTTPClient struct {
	Client  *http.Client
	BaseURL string
	Logger  zerolog.Logger
}

// NewHTTPClient builds a client. A zero timeout leaves failure detection to the transport.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		Client: &http.Client{
			Timeout: timeout,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Logger:  log.Logger,
	}
}

// GetJSON fetches path and decodes the body into out.
func (c *HTTPClient) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON sends in as the JSON body and decodes the response into out.
func (c *HTTPClient) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return apperrors.NewTransport(path, apperrors.CodeMalformedJSON, err)
	}
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return apperrors.NewTransport(path, apperrors.CodeNetworkUnreachable, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		c.Logger.Warn().Err(err).
			Str("request_id", reqID).
			Str("method", method).
			Str("path", path).
			Msg("backend unreachable")
		return apperrors.NewTransport(path, apperrors.CodeNetworkUnreachable, err)
	}
	defer resp.Body.Close()

	c.Logger.Debug().
		Str("request_id", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.Logger.Warn().
			Str("request_id", reqID).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("backend returned non-success status")
		return apperrors.NewBadStatus(path, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		c.Logger.Warn().Err(err).Str("request_id", reqID).Str("path", path).Msg("malformed response body")
		return apperrors.NewTransport(path, apperrors.CodeMalformedJSON, err)
	}
	return nil
}
