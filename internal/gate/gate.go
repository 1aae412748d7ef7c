// Package gate decides whether a stream of coverage lines clears a minimum
// coverage threshold.
//
// Lines are matched by a Matcher, matched values are folded into a Verdict,
// and the verdict is reported once the stream ends. A report without any
// coverage line passes unless strict mode is enabled.
package gate

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/meza/coverage-gate/internal/logger"
	"github.com/meza/coverage-gate/internal/perf"
)

type Gate struct {
	Threshold float64
	Strict    bool

	matcher *Matcher
	logger  *logger.Logger
}

type Option func(*Gate)

// WithStrict fails reports that contain no coverage line at all.
func WithStrict(strict bool) Option {
	return func(gate *Gate) {
		gate.Strict = strict
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(gate *Gate) {
		if log != nil {
			gate.logger = log
		}
	}
}

func New(threshold float64, opts ...Option) *Gate {
	gate := &Gate{
		Threshold: threshold,
		matcher:   NewMatcher(),
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(gate)
	}
	return gate
}

// Evaluate reads input to EOF and returns the verdict. A malformed value or
// a read failure aborts the run; the partial verdict is returned with the error.
func (gate *Gate) Evaluate(ctx context.Context, input io.Reader) (verdict Verdict, err error) {
	ctx, span := perf.StartSpan(ctx, "app.gate.evaluate",
		attribute.Float64("threshold", gate.Threshold),
		attribute.Bool("strict", gate.Strict),
	)
	defer func() {
		span.SetAttributes(
			attribute.Int("observed", verdict.Observed),
			attribute.Bool("passed", verdict.Passed),
			attribute.Bool("success", err == nil),
		)
		span.End()
	}()

	reader := bufio.NewReader(input)
	verdict = NewVerdict(gate.Threshold)
	lineNumber := 0

	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return verdict, &ReadError{Line: lineNumber, Err: ctxErr}
		}

		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return verdict, &ReadError{Line: lineNumber, Err: readErr}
		}

		if line != "" {
			lineNumber++
			verdict, err = gate.observeLine(verdict, lineNumber, line)
			if err != nil {
				return verdict, err
			}
		}

		if readErr != nil {
			break
		}
	}

	if gate.Strict && verdict.Observed == 0 {
		gate.logger.Debug("no coverage lines found, failing in strict mode")
		verdict.Passed = false
	}

	return verdict, nil
}

func (gate *Gate) observeLine(verdict Verdict, lineNumber int, line string) (Verdict, error) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	raw, ok := gate.matcher.Find(line)
	if !ok {
		return verdict, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return verdict, &MalformedValueError{
			Line:  lineNumber,
			Value: raw,
			Err:   errors.Wrap(err, "parse coverage percentage"),
		}
	}

	gate.logger.Debugf("line %d: coverage %s%% (threshold %s%%)", lineNumber, raw, FormatThreshold(gate.Threshold))
	return verdict.Observe(value), nil
}

// FormatThreshold renders a threshold without trailing zeros.
func FormatThreshold(threshold float64) string {
	return strconv.FormatFloat(threshold, 'f', -1, 64)
}
