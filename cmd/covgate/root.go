// Package covgate wires the gate into the covgate command line.
package covgate

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	initCmd "github.com/meza/coverage-gate/cmd/covgate/init"
	"github.com/meza/coverage-gate/cmd/covgate/version"
	"github.com/meza/coverage-gate/internal/constants"
	"github.com/meza/coverage-gate/internal/environment"
	"github.com/meza/coverage-gate/internal/gate"
	"github.com/meza/coverage-gate/internal/i18n"
)

func Command() *cobra.Command {
	return commandWithDeps(defaultDeps)
}

func commandWithDeps(newDeps depsFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     constants.CommandName,
		Short:   i18n.T("app.description"),
		Version: environment.AppVersion(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := gateOptionsFromFlags(cmd)
			if err != nil {
				return err
			}

			exitCode := runGate(cmd.Context(), opts, newDeps(cmd, opts))
			if exitCode != gate.ExitPassed {
				// the verdict or the error has already been printed
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				return &exitCodeError{code: exitCode}
			}
			return nil
		},
	}
	cobra.MousetrapHelpText = ""

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	persistent := rootCmd.PersistentFlags()
	persistent.Float64P("threshold", "t", 0, i18n.T("flag.threshold"))
	persistent.Bool("strict", false, i18n.T("flag.strict"))
	persistent.StringP("config", "c", constants.DefaultConfigFile, i18n.T("flag.config"))
	persistent.BoolP("quiet", "q", false, i18n.T("flag.quiet"))
	persistent.Bool("debug", false, i18n.T("flag.debug"))

	flags := rootCmd.Flags()
	flags.StringP("input", "i", "-", i18n.T("flag.input"))
	flags.Bool("perf", false, i18n.T("flag.perf"))
	flags.String("perf-out-dir", ".", i18n.T("flag.perfOutDir"))

	rootCmd.AddCommand(initCmd.Command())
	rootCmd.AddCommand(version.Command())

	translateDefaultHelpFacilities(rootCmd)

	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	return execute(ctx, Command(), args, stdin, stdout, stderr)
}

func execute(ctx context.Context, rootCmd *cobra.Command, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	fixFlagUsageAlignment(rootCmd, stdout)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return gate.ExitPassed
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return gate.ExitUsage
}

// exitCodeError carries a non-zero exit code out of RunE without any further output.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitCodeError) ExitCode() int {
	return e.code
}

func translateDefaultHelpFacilities(rootCmd *cobra.Command) {
	allCommands := append([]*cobra.Command{rootCmd}, rootCmd.Commands()...)

	for _, cmd := range allCommands {
		cmd.InitDefaultHelpFlag()
		cmd.Flags().Lookup("help").Usage = i18n.T("cmd.help.template", i18n.Tvars{
			Data: &i18n.TData{"command": cmd.Name()},
		})
	}

	rootCmd.InitDefaultHelpCmd()
	helpCmd, _, err := rootCmd.Find([]string{"help"})
	if err != nil {
		return
	}

	helpCmd.Short = i18n.T("cmd.help.usage.short")
	helpCmd.Long = i18n.T("cmd.help.usage.long", i18n.Tvars{
		Data: &i18n.TData{"appName": rootCmd.Name()},
	})
	helpCmd.Run = func(c *cobra.Command, args []string) {
		cmd, _, e := c.Root().Find(args)
		if cmd == nil || e != nil {
			c.PrintErrln(i18n.T("cmd.help.error", i18n.Tvars{
				Data: &i18n.TData{"topic": fmt.Sprintf("%#q", args)},
			}) + "\n")
			cobra.CheckErr(c.Root().Usage())
			return
		}
		cmd.InitDefaultHelpFlag()
		cmd.InitDefaultVersionFlag()
		cobra.CheckErr(cmd.Help())
	}
}

func fixFlagUsageAlignment(rootCmd *cobra.Command, out io.Writer) {
	file, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return
	}
	usageTemplate := rootCmd.UsageTemplate()
	usageTemplate = strings.ReplaceAll(usageTemplate, ".FlagUsages", fmt.Sprintf(".FlagUsagesWrapped %d", width))
	rootCmd.SetUsageTemplate(usageTemplate)
}
