//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+dir, "XDG_CONFIG_HOME="+dir, "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestHelpFlag(t *testing.T) {
	out, err := run(t, t.TempDir(), "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--dataset")
	assert.Contains(t, out, "summary")
	assert.Contains(t, out, "export")
}

func TestSummaryCommand(t *testing.T) {
	tf := NewTUITest(t)
	dir := tf.CreateTestWorkspace()

	out, err := run(t, dir, "summary", "--dataset", "dataset.json", "--category", "animal", "--lock", "p")
	require.NoError(t, err, out)
	assert.Contains(t, out, "2/4 entities")
	assert.Contains(t, out, "category:animal")
	assert.Contains(t, out, "person")
}

func TestSummaryRejectsUnknownEntity(t *testing.T) {
	tf := NewTUITest(t)
	dir := tf.CreateTestWorkspace()

	out, err := run(t, dir, "summary", "--dataset", "dataset.json", "--lock", "zebra")
	require.Error(t, err)
	assert.Contains(t, out, "cocoverse:")
}

func TestMissingDataset(t *testing.T) {
	out, err := run(t, t.TempDir(), "summary")
	require.Error(t, err)
	assert.Contains(t, out, "dataset")
}

func TestExportCommand(t *testing.T) {
	tf := NewTUITest(t)
	dir := tf.CreateTestWorkspace()

	out, err := run(t, dir, "export", "--dataset", "dataset.json", "--out", "view.svg")
	require.NoError(t, err, out)
	assert.Contains(t, out, "wrote view.svg")

	data, err := os.ReadFile(filepath.Join(dir, "view.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}
