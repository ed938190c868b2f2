package marketapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/config"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

// Client talks to the marketplace admin API over JSON/HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	maxRetries int
	log        *slog.Logger
}

// New creates a Client from the API configuration. Outbound requests carry a
// request ID, the bearer token (when configured) and are logged.
func New(cfg config.APIConfig, logger *slog.Logger) *Client {
	log := logger.With("adapter", "marketapi")
	transport := Chain(
		RequestID(),
		BearerToken(cfg.Token),
		Logger(log),
	)(http.DefaultTransport)

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		retryDelay: cfg.RetryDelay,
		maxRetries: cfg.MaxRetries,
		log:        log,
	}
}

// call performs one logical request (with retries) and decodes the envelope's
// data into out when out is non-nil.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marketapi: encode %s %s: %w", method, path, err)
		}
		payload = b
	}

	status, respBody, err := c.send(ctx, method, path, query, payload)
	if err != nil {
		return fmt.Errorf("marketapi: %s %s: %w", method, path, err)
	}

	if err := decode(status, respBody, out); err != nil {
		return fmt.Errorf("marketapi: %s %s: %w", method, path, err)
	}
	return nil
}

// send executes the request, retrying on network errors and 5xx responses.
// Writes are idempotent-on-retry from the engine's point of view, so every
// method is retried. A final 5xx is returned as a status, not an error.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var (
		status   int
		respBody []byte
	)

	op := func() error {
		status, respBody = 0, nil

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		status, respBody = resp.StatusCode, b

		if resp.StatusCode >= 500 {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(max(c.maxRetries, 0))),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		c.log.WarnContext(ctx, "marketapi retry",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("reason", err.Error()),
			slog.Duration("wait", wait),
		)
	}

	err := backoff.RetryNotify(op, policy, notify)
	if err != nil && status >= 500 {
		return status, respBody, nil
	}
	return status, respBody, err
}

// decode maps a response to an error or unpacks its data into out.
func decode(status int, body []byte, out any) error {
	var env envelope
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			if status >= 200 && status < 300 {
				return fmt.Errorf("decode json: %w", err)
			}
			env = envelope{}
		}
	}

	if status < 200 || status >= 300 {
		return statusError(status, env.Error)
	}
	if env.Error != nil {
		return statusError(http.StatusUnprocessableEntity, env.Error)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func statusError(status int, apiErr *apiError) error {
	msg := http.StatusText(status)
	if apiErr != nil && apiErr.Message != "" {
		msg = apiErr.Message
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if apiErr != nil && len(apiErr.Fields) > 0 {
			errs := make([]domain.FieldError, 0, len(apiErr.Fields))
			for _, f := range apiErr.Fields {
				errs = append(errs, domain.FieldError{Field: f.Field, Message: f.Message})
			}
			return domain.NewValidationErrors(errs)
		}
		return domain.NewValidationError("request", msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrUnavailable, status, msg)
	}
}

func collectionPath(c domain.Collection, parts ...string) string {
	var b strings.Builder
	b.WriteString("/admin/")
	b.WriteString(url.PathEscape(c.String()))
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}
