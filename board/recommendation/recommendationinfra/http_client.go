package recommendationinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jobpulse/jobpulse/board/recommendation"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

const (
	inferenceTimeout = 10 * time.Second
	trainTimeout     = 60 * time.Second
)

// Config configures the ML service client
type Config struct {
	BaseURL string
	Enabled bool
}

// HTTPRecommender implements recommendation.Recommender against the ML
// microservice's HTTP API
type HTTPRecommender struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
}

// NewHTTPRecommender creates a new ML service client
func NewHTTPRecommender(cfg Config) *HTTPRecommender {
	return &HTTPRecommender{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		enabled: cfg.Enabled,
		// Per-call deadlines differ, so the client itself carries none
		httpClient: &http.Client{},
	}
}

type recommendRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
}

type recommendResponse struct {
	Recommendations []recommendation.RecommendedJob `json:"recommendations"`
}

// Recommend returns scored jobs for a user, best first
func (r *HTTPRecommender) Recommend(ctx context.Context, userID kernel.UserID, method recommendation.Method, limit int) ([]recommendation.RecommendedJob, error) {
	if !r.enabled {
		return nil, recommendation.ErrUnavailable().WithDetail("reason", "disabled")
	}

	ctx, cancel := context.WithTimeout(ctx, inferenceTimeout)
	defer cancel()

	body, err := json.Marshal(recommendRequest{
		UserID: userID.String(),
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal recommend request: %w", err)
	}

	url := fmt.Sprintf("%s/api/recommend/%s", r.baseURL, method)
	payload, err := r.post(ctx, url, body)
	if err != nil {
		return nil, err
	}

	var parsed recommendResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("decode recommend response: %w", err)
	}

	return parsed.Recommendations, nil
}

// Train triggers a full model retraining run
func (r *HTTPRecommender) Train(ctx context.Context) (*recommendation.TrainResult, error) {
	if !r.enabled {
		return nil, recommendation.ErrUnavailable().WithDetail("reason", "disabled")
	}

	ctx, cancel := context.WithTimeout(ctx, trainTimeout)
	defer cancel()

	payload, err := r.post(ctx, r.baseURL+"/api/recommend/train", []byte("{}"))
	if err != nil {
		return nil, err
	}

	var result recommendation.TrainResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode train response: %w", err)
	}

	return &result, nil
}

func (r *HTTPRecommender) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build ml request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, recommendation.ErrUnavailable().WithCause(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read ml response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, recommendation.ErrUnavailable().WithDetail("status", resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("ml service error (%d): %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	return payload, nil
}
