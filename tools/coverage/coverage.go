// Package main runs the repository test suite with coverage and pushes the
// output through the coverage gate.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/meza/coverage-gate/internal/config"
	"github.com/meza/coverage-gate/internal/constants"
	"github.com/meza/coverage-gate/internal/gate"
)

type commandOutputRunner interface {
	CombinedOutput(*exec.Cmd) ([]byte, error)
}

type execOutputRunner struct{}

func (execOutputRunner) CombinedOutput(command *exec.Cmd) ([]byte, error) {
	return command.CombinedOutput()
}

type coverageTool struct {
	repoRoot      string
	goBinary      string
	fs            afero.Fs
	commandOutput commandOutputRunner
	stdout        io.Writer
	stderr        io.Writer
}

var getWorkingDirectory = os.Getwd
var newCoverageToolFunc = newCoverageTool
var exit = os.Exit

func main() {
	exit(runMain())
}

func runMain() int {
	tool, err := newCoverageToolFunc()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return gate.ExitUsage
	}
	return tool.run(context.Background())
}

func newCoverageTool() (*coverageTool, error) {
	workingDirectory, err := getWorkingDirectory()
	if err != nil {
		return nil, errors.Wrap(err, "error: failed to determine working directory")
	}

	repoRoot, err := findRepoRoot(workingDirectory)
	if err != nil {
		return nil, err
	}

	return &coverageTool{
		repoRoot:      repoRoot,
		goBinary:      "go",
		fs:            afero.NewBasePathFs(afero.NewOsFs(), repoRoot),
		commandOutput: execOutputRunner{},
		stdout:        os.Stdout,
		stderr:        os.Stderr,
	}, nil
}

func (tool *coverageTool) run(ctx context.Context) int {
	settings, err := config.Load(tool.fs, config.Sources{ConfigPath: constants.DefaultConfigFile})
	if err != nil {
		fmt.Fprintln(tool.stderr, err)
		return gate.ExitUsage
	}

	output, err := tool.coverageTestOutput()
	if _, writeErr := tool.stdout.Write(output); writeErr != nil {
		fmt.Fprintln(tool.stderr, writeErr)
	}
	if err != nil {
		fmt.Fprintln(tool.stderr, err)
		return gate.ExitFailed
	}

	verdict, err := gate.New(settings.Threshold, gate.WithStrict(settings.Strict)).Evaluate(ctx, bytes.NewReader(output))
	if err != nil {
		fmt.Fprintln(tool.stderr, err)
		return gate.ExitCode(verdict, err)
	}
	if err := gate.Report(tool.stdout, verdict); err != nil {
		fmt.Fprintln(tool.stderr, err)
	}
	return gate.ExitCode(verdict, nil)
}

func (tool *coverageTool) coverageTestOutput() ([]byte, error) {
	// #nosec G204 -- go binary and args are controlled by this tool.
	command := exec.Command(tool.goBinary, "test", "-cover", "./...")
	command.Dir = tool.repoRoot
	output, err := tool.commandOutput.CombinedOutput(command)
	if err != nil {
		return output, errors.Wrap(err, "error: coverage tests failed")
	}
	return output, nil
}

func findRepoRoot(startDir string) (string, error) {
	dir := startDir
	for {
		if hasGoMod(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("error: go.mod not found")
		}
		dir = parent
	}
}

func hasGoMod(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "go.mod"))
	return err == nil && !info.IsDir()
}
