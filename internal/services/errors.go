package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotAuthenticated is returned by Extract for a response that did not pass authentication
var ErrNotAuthenticated = errors.New("source response is not an authenticated 200 response")

// AuthenticationError is a non-200 answer to the source GET
type AuthenticationError struct {
	StatusCode int
	Body       string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed with status code %d", e.StatusCode)
}

// TrackerAPIError means the tracker reported an error or the issue body lacks required fields
type TrackerAPIError struct {
	StatusCode int
	Messages   []string
}

func (e *TrackerAPIError) Error() string {
	return fmt.Sprintf("[ERROR] %d - %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// CreationFailure is a creation response outside the configured success policy
type CreationFailure struct {
	StatusCode int
	Body       string
}

func (e *CreationFailure) Error() string {
	return fmt.Sprintf("failed to create issue. Status Code: %d", e.StatusCode)
}

// IsFatal reports whether err should end the process with a non-zero exit code
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var cf *CreationFailure
	return !errors.As(err, &cf)
}

func flattenErrors(messages []string, fieldErrors map[string]string) []string {
	out := append([]string{}, messages...)
	keys := make([]string, 0, len(fieldErrors))
	for k := range fieldErrors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+": "+fieldErrors[k])
	}
	return out
}
