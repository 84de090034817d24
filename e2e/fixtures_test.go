//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

const testDataset = `{
  "entities": [
    {"id": "p", "name": "person", "category": "human", "x": 0.1, "y": 0.1, "scale": 0.5, "count": 10, "class": "large"},
    {"id": "d", "name": "dog", "category": "animal", "x": 0.9, "y": 0.9, "scale": 0.2, "count": 4, "area_px": 2000},
    {"id": "c", "name": "cat", "category": "animal", "x": 0.8, "y": 0.2, "scale": 0.1, "count": 2, "area_px": 500},
    {"id": "k", "name": "kite", "category": "sports", "x": 0.5, "y": 0.5, "scale": 0.05, "count": 1}
  ],
  "relations": [
    {"a": "p", "b": "d", "weight": 5},
    {"a": "p", "b": "c", "weight": 2},
    {"a": "p", "b": "k", "weight": 1}
  ]
}`

// CreateTestWorkspace creates an isolated workspace holding dataset.json
func (tf *TUITestFramework) CreateTestWorkspace() string {
	tf.t.Helper()
	tf.workspace = tf.t.TempDir()
	tf.WriteDataset("dataset.json", testDataset)
	return tf.workspace
}

// WriteDataset writes a dataset document into the workspace
func (tf *TUITestFramework) WriteDataset(name, content string) string {
	tf.t.Helper()
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tf.t.Fatalf("Failed to write dataset: %v", err)
	}
	return path
}

// LogContents returns the application log written in the workspace
func (tf *TUITestFramework) LogContents() string {
	tf.t.Helper()
	data, err := os.ReadFile(filepath.Join(tf.workspace, "cocoverse.log"))
	if err != nil {
		return ""
	}
	return string(data)
}
