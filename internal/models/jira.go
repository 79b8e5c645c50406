package models

// SourceIssue is the shape of a tracker "get issue" response
type SourceIssue struct {
	Fields *SourceFields `json:"fields"`
}

// SourceFields holds the issue fields read from the source issue
type SourceFields struct {
	Project     *JiraProject    `json:"project"`
	Summary     *string         `json:"summary"`
	Description *string         `json:"description"`
	IssueType   *JiraIssueType  `json:"issuetype"`
	Priority    *JiraPriority   `json:"priority"`
	Status      *JiraStatus     `json:"status"`
	Components  []JiraComponent `json:"components"`
	Labels      []string        `json:"labels"`
}

// CreateIssueRequest is the issue creation payload
type CreateIssueRequest struct {
	Fields CreateFields `json:"fields"`
}

// CreateFields are the fields written to the new issue. Labels and
// Components must stay non-nil so they encode as [] rather than null.
type CreateFields struct {
	Project     JiraProject     `json:"project"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	IssueType   JiraIssueType   `json:"issuetype"`
	Priority    JiraPriority    `json:"priority"`
	Labels      []string        `json:"labels"`
	Components  []JiraComponent `json:"components"`
}

// JiraProject represents a JIRA project
type JiraProject struct {
	Key string `json:"key"`
}

// JiraIssueType represents a JIRA issue type
type JiraIssueType struct {
	Name string `json:"name"`
}

// JiraPriority represents a JIRA priority
type JiraPriority struct {
	Name string `json:"name"`
}

// JiraComponent represents a JIRA component
type JiraComponent struct {
	Name string `json:"name"`
}

// JiraStatus represents a JIRA issue status
type JiraStatus struct {
	StatusCategory *JiraStatusCategory `json:"statusCategory"`
}

// JiraStatusCategory represents the category of a JIRA status
type JiraStatusCategory struct {
	Name string `json:"name"`
}

// CreatedIssue is the body JIRA returns after creating an issue
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// ErrorResponse is the standard JIRA error body
type ErrorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

// HasErrors reports whether the body carries any error
func (e *ErrorResponse) HasErrors() bool {
	return len(e.ErrorMessages) > 0 || len(e.Errors) > 0
}
