package main

import (
	"errors"
	"fmt"
	"strings"

	"issue-replicator/internal/config"
	"issue-replicator/internal/helpers"

	"github.com/charmbracelet/huh"
)

// promptMissing asks for the source URL, username and token that config and flags left empty
func promptMissing(c *config.TrackerConfig) error {
	if !helpers.IsTerminal() {
		return errors.New("source URL, username and token must be set with flags or config when not attached to a terminal")
	}

	var fields []huh.Field
	if c.SourceURL == "" {
		fields = append(fields, huh.NewInput().
			Title("API URL").
			Description("API url to fetch the source issue fields from").
			Placeholder("https://your-domain.atlassian.net/rest/api/2/issue/PROJ-1").
			Value(&c.SourceURL).
			Validate(validateRequired("API URL")))
	}
	if c.Username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&c.Username).
			Validate(validateRequired("Username")))
	}
	if c.APIToken == "" {
		fields = append(fields, huh.NewInput().
			Title("API token").
			Description("Tracker API token or password").
			EchoMode(huh.EchoModePassword).
			Value(&c.APIToken).
			Validate(validateRequired("API token")))
	}

	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func validateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
