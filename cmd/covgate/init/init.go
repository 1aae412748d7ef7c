package init

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/meza/coverage-gate/internal/config"
	"github.com/meza/coverage-gate/internal/i18n"
	"github.com/meza/coverage-gate/internal/logger"
)

type initOptions struct {
	Flags      config.Layer
	ConfigPath string
	Force      bool
	Quiet      bool
	Debug      bool
}

func Command() *cobra.Command {
	return commandWithFs(afero.NewOsFs())
}

func commandWithFs(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: i18n.T("cmd.init.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := initOptionsFromFlags(cmd)
			if err != nil {
				return err
			}

			log := logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Quiet, opts.Debug)
			if err := runInit(fs, log, opts); err != nil {
				cmd.SilenceUsage = true
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, i18n.T("cmd.init.flag.force"))

	return cmd
}

func initOptionsFromFlags(cmd *cobra.Command) (initOptions, error) {
	flags := cmd.Flags()
	var opts initOptions
	var err error

	if flags.Changed("threshold") {
		threshold, err := flags.GetFloat64("threshold")
		if err != nil {
			return initOptions{}, err
		}
		if err := config.ValidateThreshold(threshold); err != nil {
			return initOptions{}, err
		}
		opts.Flags.Threshold = &threshold
	}
	if flags.Changed("strict") {
		strict, err := flags.GetBool("strict")
		if err != nil {
			return initOptions{}, err
		}
		opts.Flags.Strict = &strict
	}

	if opts.ConfigPath, err = flags.GetString("config"); err != nil {
		return initOptions{}, err
	}
	if opts.Force, err = flags.GetBool("force"); err != nil {
		return initOptions{}, err
	}
	if opts.Quiet, err = flags.GetBool("quiet"); err != nil {
		return initOptions{}, err
	}
	if opts.Debug, err = flags.GetBool("debug"); err != nil {
		return initOptions{}, err
	}

	return opts, nil
}

// runInit stores the settings currently in effect from flags and
// environment, so a one-off invocation can be pinned for the repository.
func runInit(fs afero.Fs, log *logger.Logger, opts initOptions) error {
	envLayer, err := config.EnvironmentLayer()
	if err != nil {
		return err
	}
	settings := config.Resolve(opts.Flags, envLayer)

	cfg := config.Config{Gate: config.GateConfig{
		Threshold: &settings.Threshold,
		Strict:    &settings.Strict,
	}}
	if err := config.WriteConfig(fs, opts.ConfigPath, cfg, opts.Force); err != nil {
		return err
	}

	log.Log(i18n.T("cmd.init.written", i18n.Tvars{
		Data: &i18n.TData{"path": opts.ConfigPath},
	}), false)
	return nil
}
