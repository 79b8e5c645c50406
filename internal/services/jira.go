package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"issue-replicator/internal/config"
	"issue-replicator/internal/helpers"
	"issue-replicator/internal/models"
	"issue-replicator/internal/repositories"
)

// Tracker is the subset of the tracker API the replicator uses
type Tracker interface {
	GetSourceIssue(ctx context.Context) (*repositories.Response, error)
	CreateIssue(ctx context.Context, issue *models.CreateIssueRequest) (*repositories.Response, error)
}

// AuthResponse is the raw body of a successful authentication GET
type AuthResponse struct {
	StatusCode int
	Body       []byte
}

// CreateResult describes a successful creation or a dry run
type CreateResult struct {
	StatusCode  int
	Body        string
	Issue       *models.CreatedIssue
	Payload     *models.CreateIssueRequest
	PayloadPath string
	DryRun      bool
}

// Options tune the creation step
type Options struct {
	DryRun     bool
	PayloadDir string
}

// JiraService replicates a source issue into a new issue
type JiraService struct {
	tracker Tracker
	config  *config.TrackerConfig
	out     *helpers.Printer
	opts    Options
	now     func() time.Time
}

// NewJiraService creates a new JIRA service backed by the HTTP repository
func NewJiraService(trackerConfig *config.TrackerConfig, out *helpers.Printer, opts Options) *JiraService {
	return NewJiraServiceWithTracker(repositories.NewJiraRepository(trackerConfig), trackerConfig, out, opts)
}

// NewJiraServiceWithTracker creates a JIRA service on top of tracker
func NewJiraServiceWithTracker(tracker Tracker, trackerConfig *config.TrackerConfig, out *helpers.Printer, opts Options) *JiraService {
	if out == nil {
		out = helpers.NewPrinter(nil)
	}
	return &JiraService{
		tracker: tracker,
		config:  trackerConfig,
		out:     out,
		opts:    opts,
		now:     time.Now,
	}
}

// Run authenticates, extracts the source fields and creates the new issue.
// It stops at the first error; the creator never runs after a failed step.
func (s *JiraService) Run(ctx context.Context) (*CreateResult, error) {
	resp, err := s.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	fields, err := s.Extract(resp)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, fields)
}

// Authenticate fetches the source issue and gates on a 200 response
func (s *JiraService) Authenticate(ctx context.Context) (*AuthResponse, error) {
	s.out.Info("Authenticating against %s", s.config.SourceURL)

	resp, err := s.tracker.GetSourceIssue(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	s.out.Success("Successful Authentication.")
	return &AuthResponse{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

// Extract parses an authenticated response into IssueFields and prints them
func (s *JiraService) Extract(resp *AuthResponse) (*models.IssueFields, error) {
	fields, err := ExtractFields(resp)
	if err != nil {
		return nil, err
	}

	s.out.Field("ProjectKey", fields.ProjectKey)
	s.out.Field("Summary", fields.Summary)
	s.out.Field("Description", fields.Description)
	s.out.Field("IssueType", fields.IssueType)
	s.out.Field("IssuePriority", fields.Priority)
	s.out.Field("IssueStatus", fields.StatusCategory)
	s.out.Field("IssueLabels", fields.Labels)
	s.out.Field("IssueComponents", fields.Components)

	return fields, nil
}

// ExtractFields parses resp without printing
func ExtractFields(resp *AuthResponse) (*models.IssueFields, error) {
	if resp == nil || resp.StatusCode != http.StatusOK {
		return nil, ErrNotAuthenticated
	}

	var apiErr models.ErrorResponse
	if json.Unmarshal(resp.Body, &apiErr) == nil && apiErr.HasErrors() {
		return nil, &TrackerAPIError{
			StatusCode: resp.StatusCode,
			Messages:   flattenErrors(apiErr.ErrorMessages, apiErr.Errors),
		}
	}

	var issue models.SourceIssue
	if err := json.Unmarshal(resp.Body, &issue); err != nil {
		return nil, fmt.Errorf("failed to decode issue: %w", err)
	}

	f := issue.Fields
	var missing []string
	if f == nil {
		missing = append(missing, "fields")
	} else {
		if f.Project == nil || f.Project.Key == "" {
			missing = append(missing, "fields.project.key")
		}
		if f.IssueType == nil || f.IssueType.Name == "" {
			missing = append(missing, "fields.issuetype.name")
		}
		if f.Priority == nil || f.Priority.Name == "" {
			missing = append(missing, "fields.priority.name")
		}
	}
	if len(missing) > 0 {
		msgs := make([]string, len(missing))
		for i, m := range missing {
			msgs[i] = "missing " + m
		}
		return nil, &TrackerAPIError{StatusCode: resp.StatusCode, Messages: msgs}
	}

	out := &models.IssueFields{
		ProjectKey: f.Project.Key,
		IssueType:  f.IssueType.Name,
		Priority:   f.Priority.Name,
		Components: make([]string, 0, len(f.Components)),
		Labels:     append([]string{}, f.Labels...),
	}
	if f.Summary != nil {
		out.Summary = *f.Summary
	}
	if f.Description != nil {
		out.Description = *f.Description
	}
	if f.Status != nil && f.Status.StatusCategory != nil {
		out.StatusCategory = f.Status.StatusCategory.Name
	}
	for _, c := range f.Components {
		out.Components = append(out.Components, c.Name)
	}

	return out, nil
}

// BuildCreateRequest maps IssueFields onto the creation payload.
// Status is not part of the payload.
func BuildCreateRequest(fields *models.IssueFields) *models.CreateIssueRequest {
	components := make([]models.JiraComponent, 0, len(fields.Components))
	for _, name := range fields.Components {
		components = append(components, models.JiraComponent{Name: name})
	}

	return &models.CreateIssueRequest{
		Fields: models.CreateFields{
			Project:     models.JiraProject{Key: fields.ProjectKey},
			Summary:     fields.Summary,
			Description: fields.Description,
			IssueType:   models.JiraIssueType{Name: fields.IssueType},
			Priority:    models.JiraPriority{Name: fields.Priority},
			Labels:      append([]string{}, fields.Labels...),
			Components:  components,
		},
	}
}

// Create submits the replicated issue. A status outside the success
// policy returns *CreationFailure.
func (s *JiraService) Create(ctx context.Context, fields *models.IssueFields) (*CreateResult, error) {
	payload := BuildCreateRequest(fields)
	result := &CreateResult{Payload: payload}

	if s.opts.PayloadDir != "" {
		path, err := helpers.SaveJSONInDir(payload, s.opts.PayloadDir, "create-payload", s.now())
		if err != nil {
			return nil, fmt.Errorf("failed to save payload: %w", err)
		}
		result.PayloadPath = path
		s.out.Info("Payload saved to %s", path)
	}

	if s.opts.DryRun {
		data, err := helpers.MarshalIndent(payload)
		if err != nil {
			return nil, err
		}
		s.out.Info("Dry run mode - issue will not be created at %s", s.config.CreateURL)
		fmt.Fprintln(s.out.Writer(), string(data))
		result.DryRun = true
		return result, nil
	}

	s.out.Info("Creating issue at %s", s.config.CreateURL)
	resp, err := s.tracker.CreateIssue(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	if !s.config.SuccessPolicy.Accepts(resp.StatusCode) {
		return nil, &CreationFailure{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	result.StatusCode = resp.StatusCode
	result.Body = string(resp.Body)

	var created models.CreatedIssue
	if json.Unmarshal(resp.Body, &created) == nil && created.Key != "" {
		result.Issue = &created
	}

	s.out.Success("Issue created successfully!")
	if result.Issue != nil {
		s.out.Info("New issue key: %s", result.Issue.Key)
	}
	fmt.Fprintln(s.out.Writer(), result.Body)

	return result, nil
}
