// Package testutil provides test helper utilities for eareview tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempFiles creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// StreamBody builds a review stream body from event/data pairs, each pair
// becoming one frame terminated by a blank line.
func StreamBody(frames ...[2]string) string {
	var b strings.Builder
	for _, frame := range frames {
		if frame[0] != "" {
			b.WriteString("event: ")
			b.WriteString(frame[0])
			b.WriteString("\n")
		}
		b.WriteString("data: ")
		b.WriteString(frame[1])
		b.WriteString("\n\n")
	}
	return b.String()
}

// StageData returns the JSON data payload for a stage event.
func StageData(stage, status string) string {
	data, _ := json.Marshal(map[string]string{"stage": stage, "status": status})
	return string(data)
}

// SampleSummary returns a staged review summary with all four sections and
// a similarity score, in the shape the backend produces.
func SampleSummary() string {
	return strings.Join([]string{
		"# Stage 1",
		"The proposed design shows 78% similarity with the reference standard.",
		"---",
		"# Stage 2",
		"- Clear separation between ingestion and processing",
		"# Stage 3",
		"- Event sourcing is the recommended pattern here",
		"# Stage 4",
		"- Add a dead-letter queue to the intake topic",
		"",
	}, "\n")
}

// ArchitectureJSON returns a small architecture description document.
func ArchitectureJSON() string {
	doc := map[string]interface{}{
		"name": "order-platform",
		"components": []map[string]string{
			{"id": "gateway", "kind": "api"},
			{"id": "orders", "kind": "service"},
		},
	}
	data, _ := json.MarshalIndent(doc, "", "  ")
	return string(data)
}
