package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"printshop_api/internal/core/models"
	"printshop_api/metrics"
	"printshop_api/pkg/logger"
)

const defaultRequestTimeout = 30 * time.Second

// BaseClient — общий HTTP-каркас адаптеров поставщиков: таймаут, JSON-кодек,
// подпись запросов через AuthEngine, клиентский лимитер и ретраи на 429/503.
type BaseClient struct {
	ApiURL   string
	supplier models.Supplier
	log      logger.Logger
	client   *http.Client
	auth     AuthEngine
	limiter  *rate.Limiter
	retry    RetryPolicy
}

type Option func(*BaseClient)

func WithAuth(auth AuthEngine) Option {
	return func(c *BaseClient) { c.auth = auth }
}

func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *BaseClient) { c.limiter = limiter }
}

func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *BaseClient) { c.retry = policy.normalized() }
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *BaseClient) { c.client = client }
}

func NewBaseClient(supplier models.Supplier, apiURL string, writer io.Writer, logPrefix string, opts ...Option) *BaseClient {
	c := &BaseClient{
		ApiURL:   apiURL,
		supplier: supplier,
		log:      logger.NewLogger(writer, logPrefix),
		client:   &http.Client{Timeout: defaultRequestTimeout},
		retry:    DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *BaseClient) Supplier() models.Supplier { return c.supplier }

// GetJSON — выборка без тела запроса.
func (c *BaseClient) GetJSON(ctx context.Context, endpoint string, query url.Values, response interface{}) error {
	return c.DoJSON(ctx, http.MethodGet, endpoint, query, nil, response)
}

// DoJSON выполняет запрос, пройдя лимитер и подпись, и декодирует JSON-ответ.
// 404 превращается в ErrNotFound, 401/403 — в *AuthError, 429/503 ретраятся
// с подсказкой Retry-After, исчерпание попыток — *RateLimitError.
func (c *BaseClient) DoJSON(ctx context.Context, method, endpoint string, query url.Values, requestBody, response interface{}) error {
	var bodyBytes []byte
	if requestBody != nil {
		var err error
		bodyBytes, err = json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	fullURL := c.ApiURL + endpoint
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	policy := c.retry.normalized()
	for attempt := 1; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("rate limiter wait: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, bytes.NewReader(bodyBytes))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.auth != nil {
			if err := c.auth.Authorize(ctx, req); err != nil {
				return err
			}
		}

		start := time.Now()
		resp, err := c.client.Do(req)
		if err != nil {
			select {
			case <-ctx.Done():
				return fmt.Errorf("request was cancelled: %w", ctx.Err())
			default:
				return fmt.Errorf("failed to execute request: %w", err)
			}
		}
		metrics.RecordSupplierRequest(string(c.supplier), endpoint, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			err = decodeBody(resp.Body, response)
			resp.Body.Close()
			return err

		case resp.StatusCode == http.StatusNotFound:
			drain(resp.Body)
			return ErrNotFound

		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			drain(resp.Body)
			return &AuthError{Supplier: c.supplier, Status: resp.StatusCode, Reason: "credentials rejected"}

		case retryableStatus(resp.StatusCode):
			retryAfter := resp.Header.Get("Retry-After")
			status := resp.StatusCode
			drain(resp.Body)

			if attempt >= policy.MaxAttempts {
				return &RateLimitError{
					Supplier:   c.supplier,
					Endpoint:   endpoint,
					Attempts:   attempt,
					LastStatus: status,
				}
			}

			delay := policy.Delay(attempt, retryAfter)
			c.log.Log("status %d from %s, retrying in %v (attempt %d/%d)",
				status, endpoint, delay, attempt, policy.MaxAttempts)
			select {
			case <-ctx.Done():
				return fmt.Errorf("request was cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}

		default:
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("non-OK status %d from %s: %s", resp.StatusCode, endpoint, snippet)
		}
	}
}

func decodeBody(body io.Reader, response interface{}) error {
	if response == nil {
		drainReader(body)
		return nil
	}
	if err := json.NewDecoder(body).Decode(response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func drain(body io.ReadCloser) {
	drainReader(body)
	body.Close()
}

func drainReader(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
}
