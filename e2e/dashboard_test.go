//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startDashboard(t *testing.T) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	tf.CreateTestWorkspace()
	t.Cleanup(tf.Cleanup)

	require.NoError(t, tf.StartApp("--dataset", "dataset.json"))
	if !tf.Ready() {
		tf.DumpTailOnFail(t, "startup", 4000)
		t.Fatal("dashboard did not render")
	}
	return tf
}

func TestDashboardStartup(t *testing.T) {
	tf := startDashboard(t)

	assert.True(t, tf.SeePlain("Entities"))
	assert.True(t, tf.SeePlain("person"))
	assert.True(t, tf.SeePlain("kite"))
	assert.True(t, tf.SeePlain("Nothing locked"))
}

func TestLockShowsNeighbors(t *testing.T) {
	tf := startDashboard(t)

	require.NoError(t, tf.Enter())
	if !tf.SeePlain("lock:p") {
		tf.DumpTailOnFail(t, "lock", 4000)
		t.Fatal("lock was not reflected in the filter line")
	}
	assert.True(t, tf.SeePlain("dog"))

	require.NoError(t, tf.SendKeys(KeyEsc))
	assert.True(t, tf.OutputContainsPlain("Nothing locked", 3*time.Second))
}

func TestExcludeEntity(t *testing.T) {
	tf := startDashboard(t)

	require.NoError(t, tf.SendKeys("x"))
	if !tf.SeePlain("excluded person") {
		tf.DumpTailOnFail(t, "exclude", 4000)
		t.Fatal("exclude message not shown")
	}
	assert.True(t, tf.SeePlain("excluded:1"))

	require.NoError(t, tf.SendKeys("u"))
	assert.True(t, tf.SeePlain("restored p"))
}

func TestCategoryCycle(t *testing.T) {
	tf := startDashboard(t)

	require.NoError(t, tf.SendKeys("c"))
	if !tf.SeePlain("category:animal") {
		tf.DumpTailOnFail(t, "category", 4000)
		t.Fatal("category filter not shown")
	}
}

func TestQuitWritesLog(t *testing.T) {
	tf := startDashboard(t)

	require.NoError(t, tf.Quit())

	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
		tf.cmd = nil
	case <-time.After(5 * time.Second):
		t.Fatal("application did not exit after quit")
	}

	assert.Contains(t, tf.LogContents(), "dataset loaded")
}
