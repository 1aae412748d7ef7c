package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunReturnsGateExitCode(t *testing.T) {
	t.Setenv("COVGATE_TEST", "true")
	t.Setenv("COVGATE_THRESHOLD", "70")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	input := strings.NewReader("module A: coverage: 85.00%\nmodule B: coverage: 65.00%\n")

	exitCode := run(context.Background(), []string{"--config", os.DevNull}, input, stdout, stderr)

	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "\nQuality gate failed\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestMainExitsWithRunResult(t *testing.T) {
	t.Setenv("COVGATE_TEST", "true")
	originalExit := exit
	originalArgs := os.Args
	t.Cleanup(func() {
		exit = originalExit
		os.Args = originalArgs
	})

	var code = -1
	exit = func(c int) { code = c }
	os.Args = []string{"covgate", "version"}

	main()

	assert.Equal(t, 0, code)
}
