//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	// Ensure the test binary exists (it should be built by TestMain)
	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// flag exits with status 0 for -help
	cmd := exec.Command(binPath, "--help")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Greater(t, len(output), 50, "Help should produce substantial output")
	require.True(t, strings.Contains(output, "Usage") || strings.Contains(output, "usage"),
		"Help should contain usage information")
	require.Contains(t, output, "-algo")
	require.Contains(t, output, "-rate")
}

func TestHelpOverlay(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithConfig())
	require.True(t, tf.Ready(), "Should receive ready signal")

	tf.SendKeys(KeyHelp)
	require.True(t, tf.SeePlain("pathviz Help"), "Should show help popup")
	require.True(t, tf.SeePlain("track recursion"), "Should list the algorithm keys")

	tf.SendKeys(KeyHelp)
	tf.Quit()
}

func TestUnknownAlgorithmFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command(binPath, "-algo", "nope", "-config", t.TempDir()+"/pathviz.toml")
	out, err := cmd.CombinedOutput()
	require.Error(t, err)
	require.Contains(t, string(out), "unknown algorithm")
}
