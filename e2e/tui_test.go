//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchRunsToFinish(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithConfig("-cols", "20", "-rows", "10", "-rate", "5000"))
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("1 Start"), "Should show the start button")

	tf.SendKeys(KeySpace)
	require.NoError(t, tf.WaitForE(func(s string) bool {
		plain := ansiRe.ReplaceAllString(s, "")
		return strings.Contains(plain, "| finished") && strings.Contains(plain, "length:")
	}, 10*time.Second, "search never finished"))
	require.True(t, tf.SeePlain("1 Restart"), "Should offer restart")

	tf.Quit()
}

func TestPauseAndReset(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	// A slow rate keeps the search in flight long enough to pause it
	require.NoError(t, tf.StartWithConfig("-rate", "20"))
	require.True(t, tf.Ready(), "Should receive ready signal")

	tf.SendKeys(KeySpace)
	require.True(t, tf.SeePlain("| searching"), "Should start searching")

	tf.SendKeys(KeyPause)
	require.True(t, tf.SeePlain("| paused"), "Should pause")
	require.True(t, tf.SeePlain("1 Resume"), "Should offer resume")

	tf.Snapshot()
	tf.SendKeys(KeyReset)
	require.True(t, tf.WaitForStatusMessage("Grid reset to", 3*time.Second), "Should report the reset")

	tf.Quit()
}

func TestIllegalKeyReportsStatus(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithConfig())
	require.True(t, tf.Ready(), "Should receive ready signal")

	// Pause is disabled before a search starts
	tf.SendKeys(KeyPause)
	require.True(t, tf.SeePlain("Button 2 is disabled"), "Should explain the disabled button")

	tf.Quit()
}
