package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"flights/config"
	"flights/entity"
	"flights/log"
	"flights/metrics"
)

// Client talks to the upstream flight aggregator. Every call carries its own
// timeout budget; timing out produces the same error shape as a remote
// failure.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	budgets config.Timeouts
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func NewClient(baseURL, apiKey string, budgets config.Timeouts, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		budgets: budgets,
		hc: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type supplierFault struct {
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

type envelope struct {
	Response json.RawMessage `json:"response"`
	Error    *supplierFault  `json:"error,omitempty"`
}

// post issues one aggregator call and decodes the response envelope into out.
// Network failures and timeouts map to TransportError, structured supplier
// failures to SupplierError.
func (c *Client) post(ctx context.Context, endpoint string, budget time.Duration, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("could not marshal %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if correlationID := log.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set("Correlation-ID", correlationID)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	metrics.AggregatorCallDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AggregatorCallsFailed.WithLabelValues(endpoint).Inc()
		return &entity.TransportError{Endpoint: endpoint, Budget: budget, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.AggregatorCallsFailed.WithLabelValues(endpoint).Inc()
		return &entity.TransportError{Endpoint: endpoint, Budget: budget, Err: err}
	}

	var env envelope
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.AggregatorCallsFailed.WithLabelValues(endpoint).Inc()
		supplierErr := &entity.SupplierError{Endpoint: endpoint, StatusCode: resp.StatusCode}
		if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil {
			supplierErr.Code = env.Error.ErrorCode
			supplierErr.Message = env.Error.ErrorMessage
		}
		return supplierErr
	}

	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.AggregatorCallsFailed.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("could not decode %s response: %w", endpoint, err)
	}
	if env.Error != nil && env.Error.ErrorMessage != "" {
		metrics.AggregatorCallsFailed.WithLabelValues(endpoint).Inc()
		return &entity.SupplierError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Code:       env.Error.ErrorCode,
			Message:    env.Error.ErrorMessage,
		}
	}

	metrics.AggregatorCalls.WithLabelValues(endpoint).Inc()
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return fmt.Errorf("could not decode %s payload: %w", endpoint, err)
	}
	return nil
}
