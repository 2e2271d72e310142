// Package inference is the stateless adapter to the external heart
// disease classifier service.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"heartguard-backend/internal/apperrors"
	"heartguard-backend/internal/models"
)

// Classification is the classifier's verdict on one feature vector.
type Classification struct {
	HasHeartDisease bool     `json:"hasHeartDisease"`
	Confidence      float64  `json:"confidence"`
	RiskFactors     []string `json:"riskFactors"`
	Recommendations []string `json:"recommendations"`
}

// TrainResult acknowledges a fire-and-forget training request.
type TrainResult struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

// NewClient builds a classifier client. Classification has no side
// effect on the service, so transient transport failures are retried a
// bounded number of times; rejected input is never retried.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		maxRetries: 2,
		backoff:    500 * time.Millisecond,
	}
}

// Classify sends the feature vector and relays the verdict.
func (c *Client) Classify(ctx context.Context, features models.ClinicalFeatures) (*Classification, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, apperrors.Unavailable("classifier call cancelled", ctx.Err())
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
			slog.Warn("retrying classifier call", "attempt", attempt, "last_error", lastErr)
		}

		result, retryable, err := c.classifyOnce(ctx, body)
		if err == nil {
			return result, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) classifyOnce(ctx context.Context, body []byte) (*Classification, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/prediction/predict", bytes.NewReader(body))
	if err != nil {
		return nil, false, apperrors.Internal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, apperrors.Unavailable("classifier call cancelled", ctx.Err())
		}
		return nil, true, apperrors.Unavailable("classifier unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, true, apperrors.Unavailable(fmt.Sprintf("classifier returned %d", resp.StatusCode), nil)
	case resp.StatusCode >= 400:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, false, apperrors.Validation("classifier rejected input: %s", string(payload))
	}

	var result Classification
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, false, apperrors.Unavailable("classifier returned malformed response", err)
	}
	return &result, false, nil
}

// Train triggers a (re)training job on the classifier service. The job
// runs remotely; this call only relays the acknowledgement and is not
// awaited by any prediction path.
func (c *Client) Train(ctx context.Context, dataPath string) (*TrainResult, error) {
	endpoint := c.baseURL + "/api/prediction/train"
	if dataPath != "" {
		endpoint += "?dataPath=" + url.QueryEscape(dataPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Unavailable("classifier unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, apperrors.Unavailable(fmt.Sprintf("training request failed with %d", resp.StatusCode), nil)
	}

	var result TrainResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// Some deployments answer with a bare string; keep the call usable.
		result = TrainResult{Message: "training started", Status: "Training"}
	}
	return &result, nil
}
