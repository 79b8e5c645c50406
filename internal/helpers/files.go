package helpers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MarshalIndent renders data as indented JSON
func MarshalIndent(data interface{}) ([]byte, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return jsonData, nil
}

// SaveJSON saves data as JSON to a file
func SaveJSON(data interface{}, path string) error {
	jsonData, err := MarshalIndent(data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// EnsureDir ensures a directory exists
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// GenerateOutputFilename generates a filename with a timestamp taken from now
func GenerateOutputFilename(prefix, extension string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format("20060102-150405"), extension)
}

// SaveJSONInDir writes data to a timestamped file in dir and returns its path
func SaveJSONInDir(data interface{}, dir, prefix string, now time.Time) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, GenerateOutputFilename(prefix, "json", now))
	if err := SaveJSON(data, path); err != nil {
		return "", err
	}
	return path, nil
}
