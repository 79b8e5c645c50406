package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"issue-replicator/internal/config"
	"issue-replicator/internal/models"
)

// Response is a tracker response with its body already read
type Response struct {
	StatusCode int
	Body       []byte
}

// JiraRepository handles JIRA API interactions
type JiraRepository struct {
	config *config.TrackerConfig
	client *http.Client
}

// NewJiraRepository creates a new JIRA repository
func NewJiraRepository(trackerConfig *config.TrackerConfig) *JiraRepository {
	return &JiraRepository{
		config: trackerConfig,
		client: &http.Client{
			Timeout: time.Duration(trackerConfig.TimeoutSeconds) * time.Second,
		},
	}
}

// GetSourceIssue fetches the configured source URL with basic auth.
// Any status is returned to the caller; only transport failures are errors.
func (r *JiraRepository) GetSourceIssue(ctx context.Context) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.SourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(r.config.Username, r.config.APIToken)

	return r.do(req)
}

// CreateIssue posts a creation payload to the configured create URL
func (r *JiraRepository) CreateIssue(ctx context.Context, issue *models.CreateIssueRequest) (*Response, error) {
	jsonData, err := json.Marshal(issue)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal issue: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.config.CreateURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(r.config.Username, r.config.APIToken)

	return r.do(req)
}

func (r *JiraRepository) do(req *http.Request) (*Response, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
