// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (output string) {
	t.Helper()

	rootCmd, err := NewRootCommand()
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(append(args, "--log-level=error", "--log-format=plain"))

	err = rootCmd.Execute()
	require.NoError(t, err)
	return stdout.String()
}

func Test_run_inMemory(t *testing.T) {
	t.Parallel()

	output := execute(t, "run",
		"--in-memory",
		"--blocks=60",
		"--session-length=20",
		"--validators=6",
		"--scheduling-lookahead=2",
		"--next-scheduling-lookahead=3")

	assert.Contains(t, output, "blocks played: 60 (last block 60)\n")
	assert.Contains(t, output, "sessions: 3\n")
	assert.Contains(t, output, "para 1000 processed: ")
	assert.Contains(t, output, "para 1001 processed: ")
}

func Test_run_inspect_export(t *testing.T) {
	t.Parallel()

	basePath := t.TempDir()

	execute(t, "run",
		"--base-path="+basePath,
		"--blocks=45",
		"--session-length=20",
		"--validators=6")

	inspected := execute(t, "inspect", "--base-path="+basePath)
	assert.Contains(t, inspected, "Scheduler state\n")
	assert.Contains(t, inspected, "Session start block: 42\n")
	assert.Contains(t, inspected, "Validator groups: 3\n")
	assert.Contains(t, inspected, "Availability cores: 3\n")

	snapshotPath := filepath.Join(t.TempDir(), "snapshot.bin")
	execute(t, "export", "--base-path="+basePath, "--output="+snapshotPath)

	fromSnapshot := execute(t, "inspect", "--snapshot="+snapshotPath)
	assert.Equal(t, inspected, fromSnapshot)
}

func Test_run_invalidSettings(t *testing.T) {
	t.Parallel()

	rootCmd, err := NewRootCommand()
	require.NoError(t, err)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"run", "--in-memory", "--backing-probability=2", "--log-level=error"})

	err = rootCmd.Execute()

	assert.EqualError(t, err, "simulation settings invalid: "+
		"BackingProbability must be lte 1 (got 2)")
}
