package gate

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, Report(&out, Fold(70, 85, 72.5)))
	assert.Equal(t, "\nQuality gate passed\n", out.String())

	out.Reset()
	assert.NoError(t, Report(&out, Fold(70, 85, 65)))
	assert.Equal(t, "\nQuality gate failed\n", out.String())
}

func TestReportWriteError(t *testing.T) {
	assert.Error(t, Report(failingWriter{}, NewVerdict(60)))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitPassed, ExitCode(Fold(60, 60), nil))
	assert.Equal(t, ExitFailed, ExitCode(Fold(60, 59), nil))
	assert.Equal(t, ExitMalformed, ExitCode(NewVerdict(60), &MalformedValueError{Err: errors.New("x")}))
	assert.Equal(t, ExitReadFailure, ExitCode(NewVerdict(60), &ReadError{Err: errors.New("x")}))
	assert.Equal(t, ExitUsage, ExitCode(NewVerdict(60), errors.New("bad flag")))
}
