package helpers

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	DisableColor()
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Success("created %s", "ENG-2")
	p.Error("status %d", 401)
	p.Field("IssueLabels", []string{"urgent"})

	out := buf.String()
	assert.Contains(t, out, "created ENG-2")
	assert.Contains(t, out, "status 401")
	assert.Contains(t, out, "IssueLabels: [urgent]")
}

func TestGenerateOutputFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "create-payload-20240309-140507.json", GenerateOutputFilename("create-payload", "json", now))
}

func TestSaveJSONInDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	path, err := SaveJSONInDir(map[string]string{"key": "ENG"}, dir, "payload", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "payload-20240309-140507.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "ENG", got["key"])
}
