package gate

import "github.com/pkg/errors"

const (
	ExitPassed      = 0
	ExitFailed      = 1
	ExitMalformed   = 2
	ExitReadFailure = 3
	ExitUsage       = 4
)

// ExitCode maps an evaluation outcome onto the process exit code.
func ExitCode(verdict Verdict, err error) int {
	if err != nil {
		var malformed *MalformedValueError
		if errors.As(err, &malformed) {
			return ExitMalformed
		}
		var readErr *ReadError
		if errors.As(err, &readErr) {
			return ExitReadFailure
		}
		return ExitUsage
	}
	if !verdict.Passed {
		return ExitFailed
	}
	return ExitPassed
}
