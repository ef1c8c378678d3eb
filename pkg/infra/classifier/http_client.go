package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// HTTPClient scores text through a remote toxicity model behind a
// circuit breaker, so a dead scorer fails fast instead of holding every
// moderation request for the full timeout.
type HTTPClient struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

type scoreRequest struct {
	Text string `json:"text"`
}

type scoreResponse struct {
	Scores map[string]float64 `mapstructure:"scores"`
}

func NewHTTPClient(url string, timeout time.Duration, logger *logrus.Logger) *HTTPClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "toxicity-classifier",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("classifier circuit breaker state change")
		},
	})
	return &HTTPClient{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
	}
}

func (c *HTTPClient) Score(ctx context.Context, text string) (Scores, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.score(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	scores, ok := result.(Scores)
	if !ok {
		return nil, fmt.Errorf("unexpected classifier result type %T", result)
	}
	return scores, nil
}

func (c *HTTPClient) score(ctx context.Context, text string) (Scores, error) {
	body, err := json.Marshal(scoreRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier response: %w", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classifier response: %w", err)
	}

	var decoded scoreResponse
	if err := mapstructure.Decode(payload, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	return Scores(decoded.Scores), nil
}
