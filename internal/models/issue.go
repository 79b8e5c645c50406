package models

// IssueFields is the normalized field set copied from the source issue.
// StatusCategory is informational and never written to the new issue.
type IssueFields struct {
	ProjectKey     string   `json:"project_key"`
	Summary        string   `json:"summary"`
	Description    string   `json:"description"`
	IssueType      string   `json:"issue_type"`
	Priority       string   `json:"priority"`
	StatusCategory string   `json:"status_category"`
	Components     []string `json:"components"`
	Labels         []string `json:"labels"`
}
