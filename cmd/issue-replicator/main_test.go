package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-replicator/internal/config"
)

const sourceIssue = `{"fields":{"project":{"key":"ENG"},"summary":"Bug","description":"desc",
	"issuetype":{"name":"Bug"},"priority":{"name":"High"},
	"status":{"statusCategory":{"name":"To Do"}},"components":[{"name":"Core"}],"labels":["urgent"]}}`

func newTracker(t *testing.T, getStatus, createStatus int) (*httptest.Server, *int) {
	t.Helper()
	creates := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/issue/ENG-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(getStatus)
		io.WriteString(w, sourceIssue)
	})
	mux.HandleFunc("/rest/api/2/issue", func(w http.ResponseWriter, r *http.Request) {
		creates++
		w.WriteHeader(createStatus)
		io.WriteString(w, `{"id":"1","key":"ENG-2"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &creates
}

func noPrompt(t *testing.T) prompter {
	return func(*config.TrackerConfig) error {
		t.Fatal("unexpected prompt")
		return nil
	}
}

func replicateArgs(t *testing.T, srvURL string, extra ...string) []string {
	args := []string{
		"replicate", "--no-color",
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--url", srvURL + "/rest/api/2/issue/ENG-1",
		"--username", "dev",
		"--token", "token",
	}
	return append(args, extra...)
}

func TestRun_Success(t *testing.T) {
	srv, creates := newTracker(t, http.StatusOK, http.StatusCreated)
	var out bytes.Buffer

	code := run(context.Background(), replicateArgs(t, srv.URL), &out, noPrompt(t))

	assert.Equal(t, exitOK, code)
	assert.Equal(t, 1, *creates)
	assert.Contains(t, out.String(), "Issue created successfully!")
	assert.Contains(t, out.String(), "ENG-2")
}

func TestRun_AuthenticationFailureExitsOne(t *testing.T) {
	srv, creates := newTracker(t, http.StatusUnauthorized, http.StatusCreated)
	var out bytes.Buffer

	code := run(context.Background(), replicateArgs(t, srv.URL), &out, noPrompt(t))

	assert.Equal(t, exitFatal, code)
	assert.Equal(t, 0, *creates)
	assert.Contains(t, out.String(), "Authentication failed with status code: 401")
}

func TestRun_CreationFailureExitsZero(t *testing.T) {
	srv, creates := newTracker(t, http.StatusOK, http.StatusBadRequest)
	var out bytes.Buffer

	code := run(context.Background(), replicateArgs(t, srv.URL), &out, noPrompt(t))

	assert.Equal(t, exitOK, code)
	assert.Equal(t, 1, *creates)
	assert.Contains(t, out.String(), "Status Code: 400, please try again.")
}

func TestRun_OKOnlyPolicyTreats201AsFailure(t *testing.T) {
	srv, _ := newTracker(t, http.StatusOK, http.StatusCreated)
	var out bytes.Buffer

	code := run(context.Background(), replicateArgs(t, srv.URL, "--success-policy", "200"), &out, noPrompt(t))

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), "Status Code: 201, please try again.")
}

func TestRun_DryRun(t *testing.T) {
	srv, creates := newTracker(t, http.StatusOK, http.StatusCreated)
	var out bytes.Buffer

	code := run(context.Background(), replicateArgs(t, srv.URL, "--dry-run"), &out, noPrompt(t))

	assert.Equal(t, exitOK, code)
	assert.Equal(t, 0, *creates)
	assert.Contains(t, out.String(), `"summary": "Bug"`)
}

func TestRun_PromptsForMissingCredentials(t *testing.T) {
	srv, creates := newTracker(t, http.StatusOK, http.StatusCreated)
	var out bytes.Buffer
	prompted := false
	prompt := func(c *config.TrackerConfig) error {
		prompted = true
		assert.Empty(t, c.APIToken)
		c.APIToken = "token"
		return nil
	}

	args := []string{
		"replicate", "--no-color",
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--url", srv.URL + "/rest/api/2/issue/ENG-1",
		"--username", "dev",
	}
	code := run(context.Background(), args, &out, prompt)

	assert.Equal(t, exitOK, code)
	assert.True(t, prompted)
	assert.Equal(t, 1, *creates)
}

func TestRun_PromptErrorIsFatal(t *testing.T) {
	var out bytes.Buffer
	prompt := func(*config.TrackerConfig) error { return errors.New("user aborted") }

	args := []string{"replicate", "--no-color", "--config", filepath.Join(t.TempDir(), "missing.yaml")}
	code := run(context.Background(), args, &out, prompt)

	assert.Equal(t, exitFatal, code)
	assert.Contains(t, out.String(), "user aborted")
}

func TestRun_ConfigFile(t *testing.T) {
	srv, creates := newTracker(t, http.StatusOK, http.StatusOK)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "tracker:\n" +
		"  source_url: " + srv.URL + "/rest/api/2/issue/ENG-1\n" +
		"  username: dev\n" +
		"  api_token: token\n" +
		"  success_policy: \"200\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
	var out bytes.Buffer

	code := run(context.Background(), []string{"replicate", "--no-color", "--config", path}, &out, noPrompt(t))

	assert.Equal(t, exitOK, code)
	assert.Equal(t, 1, *creates)
	assert.Contains(t, out.String(), "Issue created successfully!")
}

func TestRun_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer

	code := run(context.Background(), []string{"init", "--config", path}, &out, noPrompt(t))
	assert.Equal(t, exitOK, code)
	assert.FileExists(t, path)

	code = run(context.Background(), []string{"init", "--config", path}, &out, noPrompt(t))
	assert.Equal(t, exitFatal, code)
	assert.Contains(t, out.String(), "already exists")
}
