package gate

import (
	"fmt"
	"io"
)

// Report prints a blank line followed by the verdict message.
func Report(writer io.Writer, verdict Verdict) error {
	_, err := fmt.Fprintf(writer, "\n%s\n", verdict.Message())
	return err
}
