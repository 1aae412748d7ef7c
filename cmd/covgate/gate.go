package covgate

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/meza/coverage-gate/internal/config"
	"github.com/meza/coverage-gate/internal/gate"
	"github.com/meza/coverage-gate/internal/i18n"
	"github.com/meza/coverage-gate/internal/logger"
	"github.com/meza/coverage-gate/internal/perf"
)

const stdinPath = "-"

type gateOptions struct {
	Flags          config.Layer
	ConfigPath     string
	ConfigExplicit bool
	InputPath      string
	Quiet          bool
	Debug          bool
	Perf           bool
	PerfOutDir     string
}

type gateDeps struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	logger *logger.Logger
}

type depsFactory func(*cobra.Command, gateOptions) gateDeps

func defaultDeps(cmd *cobra.Command, opts gateOptions) gateDeps {
	return gateDeps{
		fs:     afero.NewOsFs(),
		stdin:  cmd.InOrStdin(),
		stdout: cmd.OutOrStdout(),
		logger: logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Quiet, opts.Debug),
	}
}

func gateOptionsFromFlags(cmd *cobra.Command) (gateOptions, error) {
	flags := cmd.Flags()
	opts := gateOptions{ConfigExplicit: flags.Changed("config")}

	if flags.Changed("threshold") {
		threshold, err := flags.GetFloat64("threshold")
		if err != nil {
			return gateOptions{}, err
		}
		if err := config.ValidateThreshold(threshold); err != nil {
			return gateOptions{}, err
		}
		opts.Flags.Threshold = &threshold
	}
	if flags.Changed("strict") {
		strict, err := flags.GetBool("strict")
		if err != nil {
			return gateOptions{}, err
		}
		opts.Flags.Strict = &strict
	}

	var err error
	if opts.ConfigPath, err = flags.GetString("config"); err != nil {
		return gateOptions{}, err
	}
	if opts.InputPath, err = flags.GetString("input"); err != nil {
		return gateOptions{}, err
	}
	if opts.Quiet, err = flags.GetBool("quiet"); err != nil {
		return gateOptions{}, err
	}
	if opts.Debug, err = flags.GetBool("debug"); err != nil {
		return gateOptions{}, err
	}
	if opts.Perf, err = flags.GetBool("perf"); err != nil {
		return gateOptions{}, err
	}
	if opts.PerfOutDir, err = flags.GetString("perf-out-dir"); err != nil {
		return gateOptions{}, err
	}

	return opts, nil
}

func runGate(ctx context.Context, opts gateOptions, deps gateDeps) int {
	ctx, span := perf.StartSpan(ctx, "app.command.gate")
	exitCode := evaluateReport(ctx, opts, deps)
	span.SetAttributes(
		attribute.Int("exit_code", exitCode),
		attribute.Bool("success", exitCode == gate.ExitPassed),
	)
	span.End()

	if opts.Perf {
		exportPerf(opts, deps)
	}
	return exitCode
}

func evaluateReport(ctx context.Context, opts gateOptions, deps gateDeps) int {
	settings, err := config.Load(deps.fs, config.Sources{
		Flags:          opts.Flags,
		ConfigPath:     opts.ConfigPath,
		ConfigExplicit: opts.ConfigExplicit,
	})
	if err != nil {
		deps.logger.Error(i18n.T("error.config", i18n.Tvars{
			Data: &i18n.TData{"error": err.Error()},
		}))
		return gate.ExitUsage
	}

	input, closeInput, err := openInput(ctx, opts.InputPath, deps)
	if err != nil {
		deps.logger.Error(i18n.T("error.input", i18n.Tvars{
			Data: &i18n.TData{"path": opts.InputPath, "error": err.Error()},
		}))
		return gate.ExitUsage
	}
	defer closeInput()

	evaluator := gate.New(settings.Threshold, gate.WithStrict(settings.Strict), gate.WithLogger(deps.logger))
	verdict, err := evaluator.Evaluate(ctx, input)
	if err != nil {
		key := "error.read"
		var malformed *gate.MalformedValueError
		if errors.As(err, &malformed) {
			key = "error.malformed"
		}
		deps.logger.Error(i18n.T(key, i18n.Tvars{
			Data: &i18n.TData{"error": err.Error()},
		}))
		return gate.ExitCode(verdict, err)
	}

	if !opts.Quiet {
		if err := gate.Report(deps.stdout, verdict); err != nil {
			deps.logger.Error(err.Error())
		}
	}
	return gate.ExitCode(verdict, nil)
}

func openInput(ctx context.Context, path string, deps gateDeps) (io.Reader, func(), error) {
	_, span := perf.StartSpan(ctx, "io.input.open", attribute.String("path", path))
	defer span.End()

	if path == stdinPath || path == "" {
		return deps.stdin, func() {}, nil
	}

	file, err := deps.fs.Open(path)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, nil, err
	}
	return file, func() {
		_ = file.Close() // read-only handle
	}, nil
}

func exportPerf(opts gateOptions, deps gateDeps) {
	path, err := perf.ExportToFile(deps.fs, opts.PerfOutDir)
	if err != nil {
		deps.logger.Error(i18n.T("perf.failed", i18n.Tvars{
			Data: &i18n.TData{"error": err.Error()},
		}))
		return
	}
	deps.logger.Debug(i18n.T("perf.exported", i18n.Tvars{
		Data: &i18n.TData{"path": path},
	}))
}
